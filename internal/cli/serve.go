package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	gommonlog "github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"versesim/internal/adapter/cache"
	"versesim/internal/handlers"
	"versesim/internal/middleware"
	"versesim/internal/usecase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve similarity queries over HTTP",
	Long: `Build the similarity index for the configured corpus and answer
queries over HTTP until interrupted.

Endpoints (under the configured API prefix):
  GET  /similar?reference=...&count=N
  POST /similar {"reference": "...", "count": N}
  GET  /health

Examples:
  versesim serve
  PORT=9000 versesim serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load .env file if present
	_ = godotenv.Load()

	cfg := GetConfig()

	result, _, err := buildPipeline(cfg, GetRootDir(), true)
	if err != nil {
		return err
	}

	search := usecase.NewSearchUseCase(result.Index, result.Verses, cfg.Query.DefaultCount)
	cached := cache.NewCachedSearcher(search, cache.NewQueryCache(cfg.Query.CacheSize))

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(logLevel(cfg.Logging.Level))

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORS(cfg.Server.CORSOrigins))

	api := e.Group(cfg.Server.APIPrefix)
	handlers.NewHealthHandler(result.Index.Len(), result.Stats.VectorLen).RegisterRoutes(api)
	handlers.NewSimilarHandler(cached).RegisterRoutes(api)

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"name":   "versesim",
			"status": "running",
		})
	})

	port := cfg.Server.Port
	if env := os.Getenv("PORT"); env != "" {
		p, err := strconv.Atoi(env)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", env, err)
		}
		port = p
	}

	go func() {
		addr := fmt.Sprintf(":%d", port)
		log.Printf("Serving %d passages on %s%s", result.Index.Len(), addr, cfg.Server.APIPrefix)
		if err := e.Start(addr); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	log.Println("Server stopped")
	return nil
}

func logLevel(level string) gommonlog.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return gommonlog.DEBUG
	case "warn":
		return gommonlog.WARN
	case "error":
		return gommonlog.ERROR
	default:
		return gommonlog.INFO
	}
}
