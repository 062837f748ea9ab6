// Package main starts the content management API server: it wires
// configuration, logging, the PostgreSQL connection, repositories,
// services, authentication, and the HTTP router.
package main

import (
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/istanbulcare/backend/internal/config"
	"github.com/istanbulcare/backend/internal/db"
	"github.com/istanbulcare/backend/internal/logger"
	"github.com/istanbulcare/backend/internal/middleware"
	"github.com/istanbulcare/backend/internal/repository"
	"github.com/istanbulcare/backend/internal/security"
	"github.com/istanbulcare/backend/internal/server/handler/http"
	"github.com/istanbulcare/backend/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line, file, and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	buildVersion, buildStamp := version, buildDate
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildStamp == "" {
		buildStamp = "N/A"
	}
	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildStamp)

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if err := options.Validate(); err != nil {
		zapLogger.Fatal("invalid configuration", zap.Error(err))
	}

	// Initialize PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Repositories.
	userRepo := repository.NewUserRepository(postgresDB)
	blogRepo := repository.NewBlogRepository(postgresDB)
	catalogRepo := repository.NewServiceRepository(postgresDB)
	columnRepo := repository.NewHeaderColumnRepository(postgresDB)
	itemRepo := repository.NewHeaderItemRepository(postgresDB)
	leadRepo := repository.NewLeadRepository(postgresDB)

	// Business-logic services.
	userService := service.NewUserService(userRepo)
	blogService := service.NewBlogService(blogRepo)
	catalogService := service.NewCatalogService(catalogRepo)
	headerService := service.NewHeaderService(columnRepo, itemRepo)
	leadService := service.NewLeadService(leadRepo)

	// Token issuance and the admin guard.
	tokens := security.NewTokenManager(options.SecretKey,
		time.Duration(options.TokenTTLMinutes)*time.Minute)
	guard := middleware.NewAuthenticator(tokens, userRepo)

	// HTTP handlers.
	authHandler := &http.AuthHandler{Accounts: userService, Tokens: tokens}
	publicHandler := &http.PublicHandler{
		Catalog:    catalogService,
		Blog:       blogService,
		Navigation: headerService,
		Leads:      leadService,
	}
	adminHandler := &http.AdminHandler{
		Catalog: catalogService,
		Blog:    blogService,
		Header:  headerService,
		Leads:   leadService,
		Users:   userService,
	}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, publicHandler, adminHandler, guard, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
