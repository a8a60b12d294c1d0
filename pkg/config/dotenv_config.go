package config

import (
	"os"
	"strconv"

	"github.com/apex/log"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/subosito/gotenv"
)

// DotenvConfig reads keys from the process environment after optionally
// loading a dotenv file into it. Variables already set in the environment
// win over the file.
type DotenvConfig struct {
	DotenvPath string
}

func NewDotenvConfig(path string) *DotenvConfig {
	return &DotenvConfig{DotenvPath: path}
}

// MustLoadFromDotenv builds a DotenvConfig from the file named by
// MERGINGTON_DOTENV_PATH. When the variable is unset only the environment is
// used. A missing or unreadable file is fatal.
func MustLoadFromDotenv() *DotenvConfig {
	c := NewDotenvConfig(os.Getenv(DotenvPathKey))
	if c.DotenvPath == "" {
		return c
	}

	if err := c.Load(); err != nil {
		log.Fatalf("Failed loading configuration file %s: %s", c.DotenvPath, err)
	}

	return c
}

func (c *DotenvConfig) LoadFromPath(path string) error {
	c.DotenvPath = path
	return c.Load()
}

func (c *DotenvConfig) Load() error {
	path, err := homedir.Expand(c.DotenvPath)
	if err != nil {
		return errors.Wrapf(err, "unable to expand dotenv path %s", c.DotenvPath)
	}

	return gotenv.Load(path)
}

func (c *DotenvConfig) GetKey(key string) string {
	return os.Getenv(key)
}

func (c *DotenvConfig) MustGetKey(key string) string {
	val := c.GetKey(key)
	if val == "" {
		log.Fatalf("No such required config key: '%s'", key)
	}

	return val
}

func (c *DotenvConfig) GetKeyWithDefault(key, defaultValue string) string {
	val := c.GetKey(key)
	if val == "" {
		return defaultValue
	}

	return val
}

func (c *DotenvConfig) GetIntKey(key string) int {
	intVal, err := strconv.Atoi(c.GetKey(key))
	if err != nil {
		return 0
	}

	return intVal
}

func (c *DotenvConfig) GetIntKeyWithDefault(key string, defaultValue int) int {
	intVal, err := strconv.Atoi(c.GetKey(key))
	if err != nil {
		return defaultValue
	}

	return intVal
}
