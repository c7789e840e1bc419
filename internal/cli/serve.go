package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fleckenm/netplot/internal/server"
	"github.com/fleckenm/netplot/pkg/cache"
	"github.com/fleckenm/netplot/pkg/store"
)

// defaultServeAddr is the listen address when neither flag nor config set one.
const defaultServeAddr = ":8080"

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		mongoURI string
		mongoDB  string
		redisURL string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the netplot HTTP API",
		Long: `Run the netplot HTTP API.

The server exposes the plotting pipeline over HTTP and stores named graphs.
By default graphs live in memory and results are cached on disk; configure
MongoDB for persistent storage and Redis for a shared cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			if addr == "" {
				addr = defaultServeAddr
			}
			if mongoURI == "" {
				mongoURI = c.Config.Server.MongoURI
			}
			if mongoDB == "" {
				mongoDB = c.Config.Server.MongoDatabase
			}
			if mongoDB == "" {
				mongoDB = appName
			}
			if redisURL == "" {
				redisURL = c.Config.Cache.RedisURL
			}
			return c.runServe(cmd.Context(), addr, mongoURI, mongoDB, redisURL, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB connection URI for persistent graph storage")
	cmd.Flags().StringVar(&mongoDB, "mongo-database", "", "MongoDB database name (default netplot)")
	cmd.Flags().StringVar(&redisURL, "redis-url", "", "Redis URL for a shared cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe assembles the store and cache backends and serves until
// interrupted.
func (c *CLI) runServe(ctx context.Context, addr, mongoURI, mongoDB, redisURL string, noCache bool) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := loggerFromContext(ctx)

	var st store.Store = store.NewMemoryStore()
	if mongoURI != "" {
		ms, err := store.NewMongoStore(ctx, mongoURI, mongoDB)
		if err != nil {
			return fmt.Errorf("connect store: %w", err)
		}
		st = ms
		logger.Info("using MongoDB store", "database", mongoDB)
	} else {
		logger.Warn("using in-memory store; graphs are lost on restart")
	}

	serverCache, err := c.newServerCache(ctx, redisURL, noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	srv := server.New(st, serverCache, logger)
	defer func() {
		if err := srv.Close(context.Background()); err != nil {
			logger.Warn("shutdown cleanup failed", "error", err)
		}
	}()

	prog := newProgress(logger)
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		return err
	}
	prog.done("Server stopped")
	return nil
}

// newServerCache prefers Redis when configured, falling back to the file
// cache used by the CLI.
func (c *CLI) newServerCache(ctx context.Context, redisURL string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL != "" {
		rc, err := cache.NewRedisCache(ctx, redisURL)
		if err != nil {
			return nil, err
		}
		c.Logger.Info("using Redis cache")
		return rc, nil
	}
	return c.newCache(false)
}
