package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/minerguide/pilotd/pkg/pilotapi"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the pilotd API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := mustOpenRoster()

		e := echo.New()
		e.HideBanner = true
		e.HidePort = true
		e.Use(middleware.Recover())

		pilotapi.SetupRoutes(e, pilotapi.RouteOpts{
			Roster: r,
			Token:  settings.APIToken,
		})

		if settings.APIToken == "" {
			log.Warn("PILOTD_API_TOKEN is not set, the API is open")
		}

		go func() {
			log.Infof("Listening on port %d", settings.Port)
			if err := e.Start(fmt.Sprintf(":%d", settings.Port)); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Unable to start server: %v", err)
			}
		}()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
