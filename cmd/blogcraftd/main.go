package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	postapi "github.com/blogcraft/blogcraft/internal/api/post"
	realtimeapi "github.com/blogcraft/blogcraft/internal/api/realtime"
	uploadapi "github.com/blogcraft/blogcraft/internal/api/upload"
	userapi "github.com/blogcraft/blogcraft/internal/api/user"
	"github.com/blogcraft/blogcraft/internal/config"
	"github.com/blogcraft/blogcraft/internal/middleware"
	"github.com/blogcraft/blogcraft/internal/realtime"
	"github.com/blogcraft/blogcraft/internal/repository/sqlite"
	"github.com/blogcraft/blogcraft/internal/service"
	"github.com/blogcraft/blogcraft/internal/storage"
	"github.com/blogcraft/blogcraft/internal/util"
)

func main() {
	config.Init()
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	db, err := sqlite.Open(config.AppConfig.DBPath)
	if err != nil {
		util.Logger.Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	store, err := storage.New(config.AppConfig)
	if err != nil {
		util.Logger.Fatal("init storage", zap.Error(err))
	}

	userRepo := sqlite.NewUserRepo(db)
	postRepo := sqlite.NewPostRepo(db)

	hub := realtime.NewHub()
	registry := realtime.NewRegistry()

	userSvc := service.NewUserService(userRepo)
	postSvc := service.NewPostService(postRepo, userRepo, hub)

	router := buildRouter(userSvc, postSvc, hub, registry, store)

	srv := &http.Server{
		Addr:    config.AppConfig.Addr,
		Handler: router,
	}

	go func() {
		util.Logger.Info("server listening", zap.String("addr", config.AppConfig.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	util.Logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		util.Logger.Error("forced shutdown", zap.Error(err))
	}
}

func buildRouter(
	userSvc *service.UserService,
	postSvc *service.PostService,
	hub *realtime.Hub,
	registry *realtime.Registry,
	store storage.Storage,
) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.AppConfig.ClientOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "connections": hub.Count()})
	})

	userapi.NewHandler(userSvc).Register(router)
	postapi.NewHandler(postSvc).Register(router)
	realtimeapi.NewHandler(hub, registry).Register(router)
	uploadapi.NewHandler(store).Register(router)

	if config.AppConfig.StorageBackend == "local" {
		router.Static("/uploads", config.AppConfig.LocalStoragePath)
	}

	return router
}
