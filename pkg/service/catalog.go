package service

import (
	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/theailifestyle/mas-a2a/pkg/a2a"
	"github.com/theailifestyle/mas-a2a/pkg/catalog"
)

/*
CatalogServer publishes the cards of every running agent so clients can
discover endpoints instead of hardcoding them.
*/
type CatalogServer struct {
	app           *fiber.App
	agentRegistry *catalog.Registry
}

func NewCatalogServer() *CatalogServer {
	srv := &CatalogServer{
		app: fiber.New(fiber.Config{
			AppName:      "A2A Catalog",
			ServerHeader: "A2A-Catalog-Server",
		}),
		agentRegistry: catalog.NewRegistry(),
	}

	srv.app.Use(logger.New())
	srv.app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	srv.app.Get("/.well-known/catalog.json", srv.handleList)
	srv.app.Get("/agent/:name", srv.handleGet)
	srv.app.Post("/agent", srv.handleRegister)

	return srv
}

func (srv *CatalogServer) App() *fiber.App {
	return srv.app
}

func (srv *CatalogServer) Listen(addr string) error {
	log.Info("catalog listening", "addr", addr)
	return srv.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
}

func (srv *CatalogServer) handleList(ctx fiber.Ctx) error {
	return ctx.JSON(srv.agentRegistry.GetAgents())
}

func (srv *CatalogServer) handleGet(ctx fiber.Ctx) error {
	card, ok := srv.agentRegistry.GetAgent(ctx.Params("name"))

	if !ok {
		return ctx.Status(fiber.StatusNotFound).SendString("agent not found")
	}

	return ctx.JSON(card)
}

func (srv *CatalogServer) handleRegister(ctx fiber.Ctx) error {
	var card a2a.AgentCard

	if err := ctx.Bind().Body(&card); err != nil {
		return ctx.Status(fiber.StatusBadRequest).SendString("invalid agent card: " + err.Error())
	}

	srv.agentRegistry.AddAgent(card)
	return ctx.Status(fiber.StatusCreated).JSON(card)
}
