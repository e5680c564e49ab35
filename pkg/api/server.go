package api

import (
	"github.com/busrute/busrute/pkg/api/routes"
	"github.com/busrute/busrute/pkg/planner"
	"github.com/gofiber/fiber/v2"
)

func NewApp(manager *planner.SessionManager) *fiber.App {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.PlacesRouter(group.Group("/places"))
	routes.SessionsRouter(group.Group("/sessions"), manager)

	return webApp
}

func SetupServer(listen string, manager *planner.SessionManager) error {
	return NewApp(manager).Listen(listen)
}
