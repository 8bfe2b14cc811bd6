package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/airmaint/airmaint/internal/apiserver/database"
	"github.com/airmaint/airmaint/internal/apiserver/handler"
	"github.com/airmaint/airmaint/internal/apiserver/middleware"
	"github.com/airmaint/airmaint/internal/auth/jwt"
	"github.com/airmaint/airmaint/internal/common/config"
	"github.com/airmaint/airmaint/pkg/logger"
	"github.com/airmaint/airmaint/pkg/metrics"
	"github.com/airmaint/airmaint/pkg/version"
)

var (
	configPath string

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of apiserver",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("apiserver version %s\n", version.Get())
		},
	}

	rootCmd = &cobra.Command{
		Use:   "apiserver",
		Short: "Property maintenance API server",
		Long:  `API server for managing apartments, maintenance tasks, materials and purchase orders`,
		Run: func(cmd *cobra.Command, args []string) {
			run()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "conf", "", "path to configuration file")
	rootCmd.AddCommand(versionCmd)
}

func run() {
	filename := configPath
	if filename == "" {
		filename = "apiserver.yaml"
	}

	cfg, cfgPath, err := config.LoadConfig[config.APIServerConfig](filename)
	if err != nil {
		log.Fatalf("Failed to load configuration from %s: %v", cfgPath, err)
	}

	zapLogger, err := logger.NewLogger(&cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("starting apiserver",
		zap.String("version", version.Get()),
		zap.String("config", cfgPath))

	store, err := database.NewStore(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to initialize storage", zap.Error(err))
	}
	defer store.Close()

	// SQL backends start empty; make sure there is a way in.
	if cfg.Database.Type != "" && cfg.Database.Type != "memory" {
		username := os.Getenv("ADMIN_USERNAME")
		if username == "" {
			username = "admin"
		}
		password := os.Getenv("ADMIN_PASSWORD")
		if password == "" {
			password = "admin123"
		}
		if err := database.EnsureDefaultAdmin(context.Background(), store, username, password); err != nil {
			zapLogger.Fatal("failed to ensure default admin", zap.Error(err))
		}
	}

	jwtService, err := jwt.NewService(jwt.Config{
		SecretKey: cfg.JWT.SecretKey,
		Duration:  cfg.JWT.Duration.Std(),
	})
	if err != nil {
		zapLogger.Fatal("failed to initialize JWT service", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.Upload.Dir, 0755); err != nil {
		zapLogger.Fatal("failed to create upload directory",
			zap.String("dir", cfg.Upload.Dir),
			zap.Error(err))
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Recovery(zapLogger))
	r.Use(middleware.Logger(zapLogger))
	r.Use(middleware.CORS(cfg.CORS))

	h := handler.NewHandler(store, zapLogger, jwtService, cfg)
	if cfg.Metrics.Enabled {
		m := metrics.New(cfg.Metrics)
		r.Use(m.Middleware())
		r.GET("/metrics", gin.WrapH(m.Handler()))
		h = h.WithMetrics(m)
	}
	h.RegisterRoutes(r, middleware.JWTAuthMiddleware(jwtService))

	r.Static("/uploads", cfg.Upload.Dir)

	port := cfg.Port
	if port == 0 {
		port = 5000
	}
	zapLogger.Info("listening", zap.Int("port", port))
	if err := r.Run(fmt.Sprintf(":%d", port)); err != nil {
		zapLogger.Fatal("server exited", zap.Error(err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Failed to execute command: %v", err)
	}
}
