package config

import (
	"os"

	"github.com/subosito/gotenv"
)

// DotenvConfig reads keys from the process environment after loading a
// dotenv file into it. Variables already set in the environment win.
type DotenvConfig struct {
	keyLookups
	DotenvPath string
}

func NewDotenvConfig(path string) *DotenvConfig {
	c := &DotenvConfig{DotenvPath: path}
	c.keyLookups = keyLookups{get: c}
	return c
}

func (c *DotenvConfig) LoadFromPath(path string) error {
	c.DotenvPath = path
	return c.Load()
}

func (c *DotenvConfig) Load() error {
	if c.DotenvPath == "" {
		return nil
	}

	return gotenv.Load(c.DotenvPath)
}

func (c *DotenvConfig) GetKey(key string) string {
	return os.Getenv(key)
}
