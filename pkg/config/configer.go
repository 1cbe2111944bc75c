package config

import (
	"strconv"
	"strings"

	"github.com/apex/log"
)

type Configer interface {
	LoadFromPath(path string) error
	Load() error
	GetKey(key string) string
	MustGetKey(key string) string
	GetKeyWithDefault(key, defaultValue string) string
	GetIntKey(key string) int
	MustGetIntKey(key string) int
	GetIntKeyWithDefault(key string, defaultValue int) int
}

// keyGetter is the one method a Configer has to provide; the rest of the
// lookups are built on top of it by keyLookups.
type keyGetter interface {
	GetKey(key string) string
}

type keyLookups struct {
	get keyGetter
}

func (k keyLookups) MustGetKey(key string) string {
	val := k.get.GetKey(key)
	if val == "" {
		log.Fatalf("No such required config key: '%s'", key)
	}

	return val
}

func (k keyLookups) GetKeyWithDefault(key, defaultValue string) string {
	val := k.get.GetKey(key)
	if val == "" {
		return defaultValue
	}

	return val
}

func (k keyLookups) GetIntKey(key string) int {
	return k.GetIntKeyWithDefault(key, 0)
}

func (k keyLookups) MustGetIntKey(key string) int {
	intVal, err := strconv.Atoi(strings.TrimSpace(k.get.GetKey(key)))
	if err != nil {
		log.Fatalf("Required config key either doesn't exist or isn't an int: '%s': %s", key, err)
	}

	return intVal
}

func (k keyLookups) GetIntKeyWithDefault(key string, defaultValue int) int {
	intVal, err := strconv.Atoi(strings.TrimSpace(k.get.GetKey(key)))
	if err != nil {
		return defaultValue
	}

	return intVal
}
