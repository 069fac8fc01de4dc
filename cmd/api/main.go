package main

import (
	"net/http"
	"os"

	"zoo-care-service/internal/adapters/auth/jwtauth"
	"zoo-care-service/internal/adapters/storage/postgres"
	"zoo-care-service/internal/platform/config"
	"zoo-care-service/internal/platform/logger"
	"zoo-care-service/internal/router"
)

// @title Zoo Care Service API
// @version 1.0
// @description API de gestión de cuidado animal: animales, comportamiento, tareas y registros médicos.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	opts := router.Options{Log: log}

	// JWT solo si hay secret; sin secret corre en modo dev
	// (X-Debug-User-ID) y el login no emite token.
	if cfg.JWTSecret != "" {
		jwtCfg := jwtauth.Config{Secret: cfg.JWTSecret, TTL: cfg.JWTTTL}
		opts.AuthVerifier = jwtauth.NewVerifier(jwtCfg)
		opts.TokenIssuer = jwtauth.NewIssuer(jwtCfg)
	} else {
		log.Warn("jwt secret not set, running in dev auth mode", nil)
	}

	if cfg.DBDSN != "" {
		db, err := postgres.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres connect failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()
		opts.DB = db
	} else {
		log.Info("no db dsn, using in-memory storage", nil)
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	log.Info("starting server", map[string]any{"addr": cfg.Addr()})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
