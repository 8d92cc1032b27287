package main

import (
	"net/http"

	"vitrina/config"
	"vitrina/config/database"
	"vitrina/internal/content/repository"
	"vitrina/internal/content/service"
	"vitrina/pkg/logger"
	"vitrina/router"
	"vitrina/socket"
)

func main() {
	logger.Init()
	defer logger.Log.Sync()

	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Sugar.Fatalf("Could not open the document store: %v", err)
	}
	defer db.Close()

	hub := socket.NewHub()
	go hub.Run()

	repo := repository.NewContentRepository(db)
	svc := service.NewContentService(repo, hub)
	svc.SeedDefaults()

	handler := router.Setup(cfg, db, svc)

	logger.Sugar.Infof("Listening on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		logger.Sugar.Fatalf("Server stopped: %v", err)
	}
}
