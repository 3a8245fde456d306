package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"school-directory/config"
	"school-directory/controllers"
	"school-directory/driver"
	"school-directory/utils"
)

func main() {
	envErr := godotenv.Load()
	cfg := config.Load()
	utils.SetupLogger(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		utils.Log.WithError(envErr).Debug("No .env file loaded")
	}

	db, err := driver.ConnectDB(cfg)
	if err != nil {
		utils.Log.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if cfg.DBMigrate {
		if err := driver.Migrate(db, cfg.DBDriver); err != nil {
			utils.Log.WithError(err).Fatal("Failed to migrate database")
		}
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           controllers.NewRouter(db, cfg.MaxBodyBytes),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.Log.WithField("addr", srv.Addr).Info("Server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Log.WithError(err).Fatal("Server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.Log.WithError(err).Error("Graceful shutdown failed")
	}
	utils.Log.Info("Server stopped")
}
