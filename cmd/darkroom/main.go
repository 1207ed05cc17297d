package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/darkroom-cms/darkroom"
	"github.com/darkroom-cms/darkroom/cmd/darkroom/config"
	"github.com/darkroom-cms/darkroom/internal/cache"
	"github.com/darkroom-cms/darkroom/internal/logger"
	"github.com/darkroom-cms/darkroom/internal/mail"
	"github.com/darkroom-cms/darkroom/internal/sessions"
	"github.com/darkroom-cms/darkroom/internal/uploads"
	"github.com/darkroom-cms/darkroom/internal/version"
)

func main() {
	_ = godotenv.Load()
	var configFile string
	if len(os.Args) > 1 {
		configFile = os.Args[1]
	}
	config.Load(configFile)
	c := config.Get()
	if err := logger.Init(c.Logging.Internal); err != nil {
		log.WithError(err).Fatal("could not init logging")
	}
	log.WithField("version", version.VERSION).Info("Loaded Config")

	if redisAddr := c.Caching.RedisAddr; redisAddr != "" {
		if err := cache.UseRedisCache(
			&redis.Options{
				Addr:     redisAddr,
				Username: c.Caching.Username,
				Password: c.Caching.Password,
				DB:       c.Caching.RedisDB,
			},
		); err != nil {
			log.WithError(err).Fatal("could not init redis cache")
		}
		log.Info("Loaded Redis Cache")
	}

	codec, err := sessions.NewCodec([]byte(c.Sessions.Secret), c.Sessions.Lifetime.Duration())
	if err != nil {
		log.WithError(err).Fatal("could not init sessions")
	}

	backs, err := config.LoadStorageBackends(c.Storage)
	if err != nil {
		log.Fatal(err)
	}

	uploadStore, err := newUploadStore(c)
	if err != nil {
		log.WithError(err).Fatal("could not init uploads")
	}

	var mailer mail.Mailer
	if c.Mail.SMTP.IsSet() {
		mailer = mail.NewSMTPMailer(c.Mail.SMTP)
		log.Info("Loaded Mailer")
	}

	d := darkroom.New(c.Server, codec, backs, uploadStore, mailer)
	if c.Uploads.Backend == "local" {
		d.ServeUploads(c.Uploads.BaseURL, c.Uploads.Dir)
	}
	log.Info("Initialized Server")
	d.Start()
}

func newUploadStore(c *config.Config) (uploads.Store, error) {
	switch c.Uploads.Backend {
	case "s3":
		return uploads.NewS3Store(context.Background(), c.Uploads.S3)
	default:
		return uploads.NewLocalStore(c.Uploads.Dir, c.Uploads.BaseURL)
	}
}
