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

	"taskboard/auth"
	"taskboard/config"
	"taskboard/database"
	"taskboard/firebase"
	"taskboard/handlers"
	"taskboard/services"
	"taskboard/utilities"
)

func main() {
	cfg, dotenv, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if err := utilities.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	if !dotenv {
		utilities.LogInfo(".env file not found, using process environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		utilities.Logger.Fatalf("failed to open store: %v", err)
	}
	defer closeStore()

	var recorder services.ActivityRecorder = services.NopRecorder{}
	if cfg.Firebase.Enabled() {
		client, err := firebase.GetFirestoreClient(ctx, cfg.Firebase)
		if err != nil {
			utilities.Logger.Fatalf("failed to connect to firestore: %v", err)
		}
		defer client.Close()
		recorder = firebase.NewActivityLog(client)
	} else {
		utilities.LogInfo("FIREBASE_CREDENTIALS_PATH not set, activity history disabled")
	}

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	h := &handlers.Handler{
		Auth:     services.NewAuthService(store, auth.NewPasswordHasher(cfg.BcryptCost), issuer),
		Users:    services.NewUserService(store),
		Projects: services.NewProjectService(store, recorder),
		Tasks:    services.NewTaskService(store, store, store, recorder),
		Tokens:   issuer,
	}

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           NewRouter(cfg, h),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		utilities.LogInfo("server started on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utilities.Logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	utilities.LogInfo("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utilities.LogError(err, "graceful shutdown failed")
	}
}

func openStore(ctx context.Context, cfg config.Config) (services.Store, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		utilities.LogWarn("using in-memory store, data is lost on restart")
		return database.NewMemory(), func() {}, nil
	}

	db, err := database.ConnectPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := database.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return database.NewPostgres(db), func() { db.Close() }, nil
}
