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

	"github.com/joho/godotenv"

	"github.com/suryamp/echo-chat/internal/config"
	"github.com/suryamp/echo-chat/internal/handler"
	"github.com/suryamp/echo-chat/internal/handler/gateway"
	"github.com/suryamp/echo-chat/internal/repository"
	authservice "github.com/suryamp/echo-chat/internal/service/auth"
	chatservice "github.com/suryamp/echo-chat/internal/service/chat"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := repository.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}

	users := repository.NewMongoUserRepository(db)
	sessions := repository.NewMongoSessionRepository(db)
	messages := repository.NewMongoMessageRepository(db)

	authSvc := authservice.NewService(users, cfg.Auth)
	chatSvc := chatservice.NewService(sessions, messages)

	router := handler.NewRouter(authSvc, chatSvc)

	gatewayMux := http.NewServeMux()
	gatewayMux.Handle("/", gateway.New())

	errCh := make(chan error, 2)
	apiSrv := startServer(cfg.Server.Addr, router, errCh)
	gatewaySrv := startServer(cfg.Gateway.Addr, gatewayMux, errCh)
	log.Printf("API listening on %s, echo gateway on %s", cfg.Server.Addr, cfg.Gateway.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = apiSrv.Shutdown(shutdownCtx)
		_ = gatewaySrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}
}

func startServer(addr string, h http.Handler, errCh chan<- error) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	return srv
}
