package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital-gin/internal/access"
	"hospital-gin/internal/auth"
	"hospital-gin/internal/chatbot"
	"hospital-gin/internal/config"
	"hospital-gin/internal/database"
	"hospital-gin/internal/handlers"
	"hospital-gin/internal/logger"
	"hospital-gin/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const serviceName = "hospital-server"

func main() {
	rootCmd := &cobra.Command{
		Use:   serviceName,
		Short: "Hospital management API server",
	}
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create empty collections and write the reference data",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			store, err := database.InitDB(cfg, log)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := database.EnsureSeed(cmd.Context(), store); err != nil {
				return err
			}
			log.Info("Seed complete")
			return nil
		},
	}
}

func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat, serviceName)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}

func runServer() error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	store, err := database.InitDB(cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := database.EnsureSeed(ctx, store); err != nil {
		return err
	}

	sessionStore, err := newSessionStore(ctx, cfg, log)
	if err != nil {
		return err
	}

	policy, err := access.LoadPolicy(cfg.AccessPolicyFile)
	if err != nil {
		return err
	}

	interactions, err := newInteractionLog(ctx, cfg, store, log)
	if err != nil {
		return err
	}
	completer := chatbot.NewClient(chatbot.ClientConfig{
		URL:         cfg.LLMAPIURL,
		APIKey:      cfg.LLMAPIKey,
		Model:       cfg.LLMModel,
		MaxTokens:   cfg.LLMMaxTokens,
		Temperature: cfg.LLMTemperature,
		Timeout:     cfg.LLMTimeout,
	}, log)
	if cfg.LLMAPIKey == "" {
		log.Warn("LLM_API_KEY is empty; the chatbot will report itself unavailable")
	}

	h := handlers.New(handlers.Deps{
		Store:    store,
		Sessions: session.NewManager(sessionStore, cfg.SessionIdleTimeout, cfg.SessionRotateInterval),
		Auth:     auth.NewService(store, cfg.DemoAccounts, log),
		Gate:     access.NewGate(policy),
		Chatbot:  chatbot.NewBridge(store, completer, interactions, log),
		Cookie:   handlers.CookieConfig{Name: cfg.SessionCookieName, Secure: cfg.SessionCookieSecure},
		Logger:   log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ListenPort,
		Handler:           handlers.SetupRouter(h, cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr), zap.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newSessionStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (session.Store, error) {
	if cfg.SessionStore != config.SessionRedis {
		log.Info("Using in-memory session store")
		return session.NewMemoryStore(), nil
	}
	client := session.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	log.Info("Using redis session store", zap.String("addr", cfg.RedisAddr))
	return session.NewRedisStore(client), nil
}

func newInteractionLog(ctx context.Context, cfg *config.Config, store database.Store, log *zap.Logger) (chatbot.InteractionLog, error) {
	if cfg.MongoURI == "" {
		return chatbot.NewStoreLog(store), nil
	}
	db, err := database.NewMongoDB(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}
	log.Info("Recording chat interactions in MongoDB", zap.String("database", cfg.MongoDatabase))
	return chatbot.NewMongoLog(db), nil
}
