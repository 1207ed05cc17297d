// Package darkroom assembles the portfolio backend: a public JSON API for
// the gallery, site content, team page and contact form, plus the
// cookie-authenticated admin API for managing all of it.
package darkroom

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	log "github.com/sirupsen/logrus"

	"github.com/darkroom-cms/darkroom/api"
	"github.com/darkroom-cms/darkroom/api/adminapi"
	"github.com/darkroom-cms/darkroom/internal/mail"
	"github.com/darkroom-cms/darkroom/internal/sessions"
	"github.com/darkroom-cms/darkroom/internal/uploads"
	"github.com/darkroom-cms/darkroom/storage/model"
)

// Darkroom is the assembled application server.
type Darkroom struct {
	server     *fiber.App
	serverConf ServerConf
}

// FiberServerConfig is the fiber.Config that is used to init the http fiber.App
var FiberServerConfig = fiber.Config{
	ReadTimeout:    3 * time.Second,
	WriteTimeout:   20 * time.Second,
	IdleTimeout:    150 * time.Second,
	ReadBufferSize: 8192,
	ErrorHandler:   handleError,
	Network:        "tcp",
	BodyLimit:      32 * 1024 * 1024, // uploads
}

func handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fiberError *fiber.Error
	if errors.As(err, &fiberError) {
		code = fiberError.Code
	}
	if code >= fiber.StatusInternalServerError {
		log.WithError(err).WithField("path", c.Path()).Error("request failed")
		return c.Status(code).JSON(api.ErrorResponse("internal server error"))
	}
	return c.Status(code).JSON(api.ErrorResponse(err.Error()))
}

// New builds the fiber app with all routes mounted. The mailer and upload
// store may be nil; the corresponding endpoints then report 500.
func New(
	serverConf ServerConf,
	codec *sessions.Codec,
	storages model.Backends,
	uploadStore uploads.Store,
	mailer mail.Mailer,
) *Darkroom {
	if tps := serverConf.TrustedProxies; len(tps) > 0 {
		FiberServerConfig.TrustedProxies = serverConf.TrustedProxies
		FiberServerConfig.EnableTrustedProxyCheck = true
	}
	FiberServerConfig.ProxyHeader = serverConf.ForwardedIPHeader
	server := fiber.New(FiberServerConfig)
	server.Use(recover.New())
	server.Use(compress.New())
	server.Use(logger.New())
	server.Use(requestid.New())
	server.Use(adminapi.Gate(codec))

	registerPublicRoutes(server, storages, mailer)
	adminapi.Register(server, codec, storages, uploadStore)

	return &Darkroom{
		server:     server,
		serverConf: serverConf,
	}
}

// ServeUploads mounts the local upload directory as static files.
func (d *Darkroom) ServeUploads(prefix, dir string) {
	d.server.Static(prefix, dir)
}

// HttpHandlerFunc returns an http.HandlerFunc for serving all endpoints
func (d *Darkroom) HttpHandlerFunc() http.HandlerFunc {
	return adaptor.FiberApp(d.server)
}

// Listen starts an http server at the specific address
func (d *Darkroom) Listen(addr string) error {
	return d.server.Listen(addr)
}

// Start serves the app according to the server config, handling TLS and
// the optional http redirect server.
func (d *Darkroom) Start() {
	conf := d.serverConf
	if !conf.TLS.Enabled {
		log.WithField("port", conf.Port).Info("TLS is disabled starting http server")
		log.WithError(d.server.Listen(fmt.Sprintf("%s:%d", conf.IPListen, conf.Port))).Fatal()
	}
	// TLS enabled
	if conf.TLS.RedirectHTTP {
		httpServer := fiber.New(FiberServerConfig)
		httpServer.All(
			"*", func(ctx *fiber.Ctx) error {
				//goland:noinspection HttpUrlsUsage
				return ctx.Redirect(
					strings.Replace(ctx.Request().URI().String(), "http://", "https://", 1),
					fiber.StatusPermanentRedirect,
				)
			},
		)
		log.Info("TLS and http redirect enabled, starting redirect server on port 80")
		go func() {
			log.WithError(httpServer.Listen(":80")).Fatal()
		}()
	}
	time.Sleep(time.Millisecond) // This is just for a more pretty output with the tls header printed after the http one
	log.Info("TLS enabled, starting https server on port 443")
	log.WithError(d.server.ListenTLS(":443", conf.TLS.Cert, conf.TLS.Key)).Fatal()
}
