package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/career-dashboard/internal/bot"
	"github.com/maxaizer/career-dashboard/internal/clients/storage"
	"github.com/maxaizer/career-dashboard/internal/config"
	"github.com/maxaizer/career-dashboard/internal/logger"
	"github.com/maxaizer/career-dashboard/internal/metrics"
	"github.com/maxaizer/career-dashboard/internal/repositories"
	"github.com/maxaizer/career-dashboard/internal/services"
	"github.com/maxaizer/career-dashboard/internal/web"
	"github.com/maxaizer/career-dashboard/internal/workspace"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var configPath string

type frontends struct {
	web bool
	bot bool
}

func main() {
	root := &cobra.Command{
		Use:           "career-dashboard",
		Short:         "Career dashboard served on the web and in Telegram",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to the config file")

	root.AddCommand(
		&cobra.Command{
			Use:   "web",
			Short: "Serve the web dashboard",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return run(cmd.Context(), frontends{web: true})
			},
		},
		&cobra.Command{
			Use:   "bot",
			Short: "Run the Telegram bot",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return run(cmd.Context(), frontends{bot: true})
			},
		},
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the web dashboard and run the Telegram bot if it is enabled",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return run(cmd.Context(), frontends{web: true, bot: true})
			},
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Get(), nil
	}
	return config.Load(configPath)
}

func run(ctx context.Context, enabled frontends) error {

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger.Setup(ctx, cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer(cfg.Metrics.Address)

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	sessions := repositories.NewSessionsRepository(dbContext.DB)

	cleaner, err := services.NewSessionsCleaner(sessions, cfg.DB.SessionExpirationInDays)
	if err != nil {
		log.Fatalf("can't create sessions cleaner: %v", err)
	}
	cleaner.Start()
	defer cleaner.Stop()

	bus := EventBus.New()

	uploader := storage.NewUploader()
	uploader.SetRateLimit(cfg.API.MaxRequestsPerSecond)

	store, err := workspace.NewStore(workspace.Options{
		BaseURL:                  cfg.API.BaseURL,
		Timeout:                  cfg.API.Timeout,
		MaxRequestsPerSecond:     cfg.API.MaxRequestsPerSecond,
		ExtractSkillsAfterUpload: cfg.API.ExtractSkillsAfterUpload,
	}, uploader, sessions, bus, cfg.Web.WorkspaceTTL)
	if err != nil {
		log.Fatalf("can't create workspace store: %v", err)
	}

	var server *web.Server
	if enabled.web {
		server, err = web.NewServer(cfg.Web, store)
		if err != nil {
			log.Fatalf("can't create web server: %v", err)
		}
		go func() {
			if err := server.Start(cfg.Web.Address); err != nil {
				log.Errorf("web server stopped: %v", err)
			}
		}()
	}

	if enabled.bot {
		if err := runBot(ctx, cfg.Bot, bus, store, !enabled.web); err != nil {
			return err
		}
	}

	<-ctx.Done()

	log.Info("Shutting down services...")
	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorf("web server shutdown failed: %v", err)
		}
	}
	log.Info("Services stopped.")
	return nil
}

// runBot starts the Telegram front end. When it is the only front end a
// disabled bot is an error.
func runBot(ctx context.Context, cfg config.BotConfig, bus EventBus.Bus, store *workspace.Store, required bool) error {

	if !cfg.Enabled {
		if required {
			return errors.New("the bot is disabled, set bot.enabled to run it")
		}
		log.Info("Telegram bot is disabled")
		return nil
	}

	tgbot, err := bot.NewBot(cfg.Token, bus, store)
	if err != nil {
		log.Fatalf("can't create bot: %v", err)
	}
	go tgbot.Run(ctx)
	return nil
}
