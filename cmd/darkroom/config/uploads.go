package config

import (
	"github.com/pkg/errors"

	"github.com/darkroom-cms/darkroom/internal/uploads"
)

type uploadsBackend string

const (
	uploadsBackendLocal uploadsBackend = "local"
	uploadsBackendS3    uploadsBackend = "s3"
)

type uploadsConf struct {
	Backend uploadsBackend `yaml:"backend"`
	// Local backend
	Dir     string `yaml:"dir"`
	BaseURL string `yaml:"base_url"`
	// S3 backend
	S3 uploads.S3Conf `yaml:"s3"`
}

func (c *uploadsConf) validate() error {
	switch c.Backend {
	case uploadsBackendLocal:
		if c.Dir == "" {
			return errors.New("uploads dir must be set for the local backend")
		}
	case uploadsBackendS3:
		if c.S3.Bucket == "" {
			return errors.New("s3 bucket must be set for the s3 backend")
		}
	default:
		return errors.Errorf("unknown uploads backend '%s'", c.Backend)
	}
	return nil
}

var defaultUploadsConf = uploadsConf{
	Backend: uploadsBackendLocal,
	Dir:     "uploads",
	BaseURL: "/uploads",
}
