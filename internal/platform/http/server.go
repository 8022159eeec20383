package http

import (
	"github.com/gofiber/fiber/v2"
)

type Options struct {
	AppName string
}

func NewServer(opts Options, modules ...Module) *fiber.App {
	app := fiber.New(fiber.Config{AppName: opts.AppName})

	api := app.Group("/api")
	for _, m := range modules {
		m.Register(api)
	}

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })
	return app
}
