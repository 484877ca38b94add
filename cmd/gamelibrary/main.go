package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/oauth2"

	adapthttp "gamelibrary/internal/adapter/http"
	"gamelibrary/internal/app"
	"gamelibrary/internal/config"
	"gamelibrary/internal/domain"
	"gamelibrary/internal/logging"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:          "gamelibrary",
		Short:        "Game catalog with reviews and wishlists",
		SilenceUsage: true,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	flags.String("repository", "", "repository backend: memory or database")
	flags.String("data", "", "path to the games CSV")
	flags.String("reviews", "", "optional path to a reviews CSV")
	flags.String("db-driver", "", "database driver: postgres or sqlite")
	flags.String("db-dsn", "", "database connection string")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	bind := map[string]string{
		"repository":   "repository",
		"data_path":    "data",
		"reviews_path": "reviews",
		"db.driver":    "db-driver",
		"db.dsn":       "db-dsn",
		"log.level":    "log-level",
	}
	for key, name := range bind {
		_ = v.BindPFlag(key, flags.Lookup(name))
	}

	load := func() (*config.Config, *slog.Logger, error) {
		cfg, err := config.Load(v, cfgFile)
		if err != nil {
			return nil, nil, err
		}
		logger := logging.Setup(logging.Options{
			Level:      cfg.Log.Level,
			Format:     cfg.Log.Format,
			File:       cfg.Log.File,
			MaxSizeMB:  cfg.Log.MaxSize,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAge,
			Compress:   cfg.Log.Compress,
		})
		return cfg, logger, nil
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := load()
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg, logger)
		},
	}
	serve.Flags().String("addr", "", "listen address")
	_ = v.BindPFlag("addr", serve.Flags().Lookup("addr"))

	seed := &cobra.Command{
		Use:   "seed",
		Short: "Load the games CSV into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := load()
			if err != nil {
				return err
			}
			return runSeed(cmd.Context(), cfg, logger)
		},
	}

	root.AddCommand(serve, seed)
	return root
}

func runServe(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := openRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	secret := cfg.JWTSecret
	if secret == "" {
		secret = randomSecret()
		logger.Warn("jwt_secret not set; using a random secret, sessions will not survive a restart")
	}

	svc := adapthttp.Services{
		Browse:   app.NewBrowseService(repo),
		Genres:   app.NewGenreService(repo),
		Reviews:  app.NewReviewService(repo),
		Wishlist: app.NewWishlistService(repo),
		Profiles: app.NewProfileService(repo),
		Auth:     app.NewAuthService(repo, secret),
	}
	opts := []adapthttp.Option{adapthttp.WithLogger(logger)}
	if scoper, ok := repo.(domain.RequestScoper); ok {
		opts = append(opts, adapthttp.WithRequestScope(scoper))
	}
	if cfg.OIDC.Enabled {
		oidcCfg, err := newOIDC(ctx, cfg.OIDC)
		if err != nil {
			return fmt.Errorf("oidc: %w", err)
		}
		opts = append(opts, adapthttp.WithOIDC(oidcCfg))
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           adapthttp.New(svc, opts...).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr, "repository", cfg.Repository)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newOIDC(ctx context.Context, cfg config.OIDCConfig) (adapthttp.OIDCConfig, error) {
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return adapthttp.OIDCConfig{}, err
	}
	return adapthttp.OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}, nil
}

func randomSecret() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
