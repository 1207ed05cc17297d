// Package logger initializes the process-wide logrus logger from config.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Conf holds configuration related to logging
type Conf struct {
	Dir    string `yaml:"dir"`
	StdErr bool   `yaml:"stderr"`
	Level  string `yaml:"level"`
}

// Init configures the global logrus logger. When Dir is set, logs are
// appended to darkroom.log inside it; StdErr additionally mirrors output to
// stderr.
func Init(conf Conf) error {
	if conf.Level != "" {
		level, err := log.ParseLevel(conf.Level)
		if err != nil {
			return errors.Wrapf(err, "unknown log level '%s'", conf.Level)
		}
		log.SetLevel(level)
	}
	var writers []io.Writer
	if conf.Dir != "" {
		f, err := os.OpenFile(
			filepath.Join(conf.Dir, "darkroom.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644,
		)
		if err != nil {
			return errors.Wrap(err, "could not open log file")
		}
		writers = append(writers, f)
	}
	if conf.StdErr || len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}
	log.SetOutput(io.MultiWriter(writers...))
	return nil
}
