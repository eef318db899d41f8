package main

import (
	"catalog/config"
	"catalog/db"
	"catalog/handlers"
	"catalog/models"
	"catalog/processing"
	"catalog/storage"
	"catalog/utils"
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

func splitList(s string) []string {
	result := []string{}
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}

func newRouter() *gin.Engine {
	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        30 * 24 * time.Hour,
	}
	if origins := splitList(config.CORS_ORIGINS); len(origins) == 0 || origins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	router.Use(cors.New(corsConfig))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/images/", "/uploads/"})))
	}
	handlers.RegisterRoutes(router)
	return router
}

func runServer(ctx context.Context) error {
	db.Init()
	if err := models.Init(); err != nil {
		return err
	}
	if err := storage.Init(); err != nil {
		return err
	}
	processing.OnIndexed = func(imageID uint64) {
		handlers.Broadcast(handlers.Event{Type: handlers.EventImageIndexed, ID: imageID})
	}
	go processing.StartProcessing(ctx)

	router := newRouter()
	if config.TLS_DOMAINS != "" {
		return autotls.RunWithContext(ctx, router, splitList(config.TLS_DOMAINS)...)
	}
	server := &http.Server{
		Addr:    config.BIND_ADDRESS,
		Handler: router,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()
	log.Printf("Listening on %s", config.BIND_ADDRESS)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Print("Server stopped")
	return nil
}
