// Package config loads and validates the darkroom server configuration
// from a yaml file.
package config

import (
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/zachmann/go-utils/fileutils"
	"gopkg.in/yaml.v3"

	"github.com/darkroom-cms/darkroom"
	"github.com/darkroom-cms/darkroom/internal/logger"
)

// Config holds the complete server configuration.
type Config struct {
	Server   darkroom.ServerConf `yaml:"server"`
	Logging  loggingConf         `yaml:"logging"`
	Storage  storageConf         `yaml:"storage"`
	Sessions sessionsConf        `yaml:"sessions"`
	Caching  cachingConf         `yaml:"caching"`
	Uploads  uploadsConf         `yaml:"uploads"`
	Mail     mailConf            `yaml:"mail"`
}

var conf *Config

// Get returns the loaded Config.
func Get() *Config {
	return conf
}

type configValidator interface {
	validate() error
}

var possibleConfigLocations = []string{
	".",
	"config",
	"/etc/darkroom",
}

// Load parses the config file. When file is empty, the usual locations are
// searched for a config.yaml.
func Load(file string) {
	if file == "" {
		file = findConfigFile()
	}
	data, err := os.ReadFile(file)
	if err != nil {
		log.WithError(err).Fatal("could not read config file")
	}
	c := defaultConfig()
	if err = yaml.Unmarshal(data, &c); err != nil {
		log.WithError(err).Fatal("could not parse config file")
	}
	if err = c.validate(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}
	conf = &c
}

func findConfigFile() string {
	for _, dir := range possibleConfigLocations {
		for _, name := range []string{"config.yaml", "config.yml"} {
			if f := dir + "/" + name; fileutils.FileExists(f) {
				return f
			}
		}
	}
	log.Fatal("could not find a config file")
	return ""
}

func defaultConfig() Config {
	return Config{
		Server: darkroom.ServerConf{
			Port: 8080,
		},
		Logging:  defaultLoggingConf,
		Storage:  defaultStorageConf,
		Sessions: defaultSessionsConf,
		Uploads:  defaultUploadsConf,
	}
}

func (c *Config) validate() error {
	for name, v := range map[string]configValidator{
		"logging":  &c.Logging,
		"storage":  &c.Storage,
		"sessions": &c.Sessions,
		"uploads":  &c.Uploads,
	} {
		if err := v.validate(); err != nil {
			return errors.Wrapf(err, "error in %s config", name)
		}
	}
	return nil
}

type loggingConf struct {
	Internal logger.Conf `yaml:"internal"`
}

func (c *loggingConf) validate() error {
	if dir := c.Internal.Dir; dir != "" && !fileutils.FileExists(dir) {
		return errors.Errorf("logging directory '%s' does not exist", dir)
	}
	return nil
}

var defaultLoggingConf = loggingConf{
	Internal: logger.Conf{
		Level:  "INFO",
		StdErr: true,
	},
}
