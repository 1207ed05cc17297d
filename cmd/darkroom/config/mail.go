package config

import (
	"github.com/darkroom-cms/darkroom/internal/mail"
)

type mailConf struct {
	SMTP mail.SMTPConf `yaml:"smtp"`
}
