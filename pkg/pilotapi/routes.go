package pilotapi

import (
	"github.com/labstack/echo/v4"
	"github.com/minerguide/pilotd/pkg/pilotapi/apimiddleware"
	"github.com/minerguide/pilotd/pkg/roster"
)

type RouteOpts struct {
	Roster *roster.Roster

	// Token, when set, must accompany every request.
	Token string
}

func SetupRoutes(e *echo.Echo, opts RouteOpts) {
	g := e.Group("/api")
	if opts.Token != "" {
		g.Use(apimiddleware.TokenAuth(apimiddleware.TokenConfig{
			Keyname:    apimiddleware.DefaultKeyname,
			ValidToken: apimiddleware.MatchToken(opts.Token),
		}))
	}

	pilotController := NewPilotController(opts.Roster)
	g.GET("/pilots", pilotController.ListPilots)
	g.GET("/pilots/by-slug/:slug", pilotController.GetPilotBySlug)
	g.GET("/pilots/:id", pilotController.GetPilot)
	g.GET("/pilots/:id/document", pilotController.GetPilotDocument)
	g.PUT("/pilots/:id/skills/:skill", pilotController.SetSkillLevel)
	g.PUT("/pilots/:id/implants/:slot", pilotController.SetImplant)
	g.POST("/pilots/:id/refresh", pilotController.RefreshPilot)
}
