package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mkostrikov/marketplace/internal/config"
	"github.com/mkostrikov/marketplace/internal/handlers"
	"github.com/mkostrikov/marketplace/internal/logging"
	"github.com/mkostrikov/marketplace/internal/middleware/auth"
	"github.com/mkostrikov/marketplace/internal/middleware/csrf"
	loggingmw "github.com/mkostrikov/marketplace/internal/middleware/logging"
	"github.com/mkostrikov/marketplace/internal/mykafka"
	"github.com/mkostrikov/marketplace/internal/store"
	httpserver "github.com/mkostrikov/marketplace/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("db init failed: %v", err)
	}

	st := store.New(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := st.EnsureDefaultCategories(ctx); err != nil {
		cancel()
		log.Fatalf("category bootstrap failed: %v", err)
	}
	cancel()

	jwtSecret := []byte(configuration.JWT_SECRET)
	refreshSecret := []byte(configuration.REFRESH_SECRET)

	var prod *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		prod, err = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
		if err != nil {
			log.Fatal(err)
		}
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))
	e.Use(csrf.Middleware(csrf.Config{
		EnforceSameOrigin: true,
		SkipPaths:         []string{"/api/register", "/api/login"},
	}))

	deps := httpserver.Deps{
		DB:                 db,
		AuthHandler:        &handlers.AuthHandler{Store: st, JWTSecret: jwtSecret, RefreshSecret: refreshSecret, Producer: prod},
		CategoryHandler:    &handlers.CategoryHandler{Store: st},
		ProductHandler:     &handlers.ProductHandler{Store: st, Producer: prod},
		FavoriteHandler:    &handlers.FavoriteHandler{Store: st, Producer: prod},
		CartHandler:        &handlers.CartHandler{Store: st, Producer: prod},
		OrderHandler:       &handlers.OrderHandler{Store: st, Producer: prod},
		ApplicationHandler: &handlers.ApplicationHandler{Store: st, Producer: prod},
		TokenService:       &auth.TokenService{DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.HTTP_PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
