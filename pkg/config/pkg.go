package config

import (
	"errors"
	"io/fs"

	"github.com/apex/log"
)

var configer Configer = NewDotenvConfig("")

func SetConfig(c Configer) {
	configer = c
}

func GetConfig() Configer {
	return configer
}

// MustLoadFromDotenv loads path into the environment, makes the result the
// package config and returns it. A missing file is not an error since every
// key can come from the environment; a malformed one is fatal.
func MustLoadFromDotenv(path string) Configer {
	c := NewDotenvConfig(path)
	if err := c.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Fatalf("Unable to load %s: %s", path, err)
		}
		log.Infof("No dotenv file at %s, using environment only", path)
	}

	SetConfig(c)
	return c
}

func LoadFromPath(path string) error {
	return configer.LoadFromPath(path)
}

func Load() error {
	return configer.Load()
}

func GetKey(key string) string {
	return configer.GetKey(key)
}

func MustGetKey(key string) string {
	return configer.MustGetKey(key)
}

func GetKeyWithDefault(key, defaultValue string) string {
	return configer.GetKeyWithDefault(key, defaultValue)
}

func GetIntKey(key string) int {
	return configer.GetIntKey(key)
}

func MustGetIntKey(key string) int {
	return configer.MustGetIntKey(key)
}

func GetIntKeyWithDefault(key string, defaultValue int) int {
	return configer.GetIntKeyWithDefault(key, defaultValue)
}
