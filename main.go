package main

import (
	"fmt"
	"log"
	"net/http"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/TEJASTATODE/saas-notes/auth"
	"github.com/TEJASTATODE/saas-notes/config"
	"github.com/TEJASTATODE/saas-notes/handlers"
	"github.com/TEJASTATODE/saas-notes/quota"
	"github.com/TEJASTATODE/saas-notes/store"
	"github.com/TEJASTATODE/saas-notes/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	defer cfg.Logger.Sync()

	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
	if err != nil {
		cfg.Logger.Fatalf("database connection error %v", err)
	}
	cfg.Logger.Info("database connected")

	st := store.NewGorm(db)
	if err := st.Migrate(); err != nil {
		cfg.Logger.Fatalf("error while running migration: %v", err)
	}
	cfg.Logger.Info("migration was successfull")

	tokens := token.NewService([]byte(cfg.JWTSecret), cfg.TokenTTL)
	resolver := auth.NewResolver(tokens, st)
	enforcer := quota.NewEnforcer(st, cfg.Logger, cfg.QuotaWaitMax)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"ok"}`)
	})
	handlers.SetupRoutes(mux, handlers.Deps{
		Store:    st,
		Tokens:   tokens,
		Resolver: resolver,
		Enforcer: enforcer,
		Logger:   cfg.Logger,
	})

	cfg.Logger.Infof("server is runnning on %s", cfg.ServerPort)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.ServerPort), mux); err != nil {
		cfg.Logger.Fatalf("server error: %v", err)
	}
}
