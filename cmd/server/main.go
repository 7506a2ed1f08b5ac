package main // Entry point package

import (
	"context"
	"errors"
	"fmt"
	"log" // Logging library
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4" // Echo web framework
	"github.com/spf13/cobra"

	"github.com/iliyamo/booth-data/internal/artifact"
	"github.com/iliyamo/booth-data/internal/config" // Internal config loader
	"github.com/iliyamo/booth-data/internal/converter"
	"github.com/iliyamo/booth-data/internal/database"
	"github.com/iliyamo/booth-data/internal/handler"
	"github.com/iliyamo/booth-data/internal/layout"
	"github.com/iliyamo/booth-data/internal/middleware"
	"github.com/iliyamo/booth-data/internal/queue"
	"github.com/iliyamo/booth-data/internal/router" // Internal router setup
	qp "github.com/iliyamo/booth-data/internal/service"
	"github.com/iliyamo/booth-data/internal/storage"
	"github.com/iliyamo/booth-data/internal/utils"
)

var rootCmd = &cobra.Command{
	Use:           "server",
	Short:         "Serve event artifacts from the local data tree",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var tokenCmd = &cobra.Command{
	Use:           "token",
	Short:         "Print an admin access token signed with JWT_SECRET",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		ttl, _ := cmd.Flags().GetInt("ttl")
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			return errors.New("JWT_SECRET is not defined")
		}
		tok, err := utils.NewAccessToken(secret, subject, utils.RoleAdmin, ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok.Token)
		log.Printf("token for %s expires at %s", subject, tok.Exp.Format(time.RFC3339))
		return nil
	},
}

func serve(ctx context.Context) error {
	cfg := config.Load() // Load environment config
	l := layout.New(cfg.DataDir)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis: unavailable, cache and rate limit disabled")
	} else {
		defer rdb.Close()
	}
	cacheCfg := config.LoadCacheConfig()

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	pub := newPublisher(ctx, l)
	admin := handler.NewAdminHandler(l, converter.New(os.Stderr), pub)
	if db, repo := database.OpenLedger(ctx, config.LoadDatabaseConfig()); repo != nil {
		defer db.Close()
		admin.History = repo
		if pub != nil {
			pub.Ledger = repo
		}
	}
	admin.Invalidate = func(ctx context.Context, eventID string) error {
		return middleware.InvalidateEvent(ctx, cacheCfg, rdb, eventID)
	}

	router.RegisterRoutes(e, l) // Register application routes
	router.RegisterPublic(e, handler.NewEventHandler(l), middleware.NewEventCache(cacheCfg, rdb))
	router.RegisterAdmin(e, admin, cfg.JWTSecret)

	addr := ":" + cfg.Port                                                          // Address string with port
	log.Printf("listening on %s (env=%s, data=%s)", addr, cfg.Env, l.EventsDir()) // Print startup info

	errc := make(chan error, 1)
	go func() { errc <- e.Start(addr) }()
	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// newPublisher returns nil when no bucket is configured, which turns the
// upload route into a 503.
func newPublisher(ctx context.Context, l layout.Layout) *artifact.Publisher {
	cfg := config.LoadStorageConfig()
	store, err := storage.NewS3Store(ctx, cfg)
	if err != nil {
		log.Printf("storage: uploads disabled: %v", err)
		return nil
	}
	pub := &artifact.Publisher{Layout: l, Uploader: storage.NewUploader(cfg, store, nil)}
	if broker := config.LoadBrokerConfig(); broker.Enabled() {
		pub.Notify = func(ctx context.Context, ev queue.ArtifactUploadedEvent) error {
			return qp.PublishArtifactUploaded(ctx, broker.URL, ev)
		}
	}
	return pub
}

func main() {
	if err := config.LoadDotEnv(config.DotEnvFiles...); err != nil {
		log.Printf("config: %v", err)
	}
	tokenCmd.Flags().String("subject", "admin", "token subject")
	tokenCmd.Flags().Int("ttl", config.AccessTokenTTL(), "lifetime in minutes")
	rootCmd.AddCommand(tokenCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		log.Fatal(err) // Log and exit if server fails
	}
}
