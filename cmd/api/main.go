package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/jpcardenasg/esencia-backend/api/routes"
	"github.com/jpcardenasg/esencia-backend/internal/auth"
	"github.com/jpcardenasg/esencia-backend/internal/cart"
	"github.com/jpcardenasg/esencia-backend/internal/catalog"
	"github.com/jpcardenasg/esencia-backend/internal/custom"
	"github.com/jpcardenasg/esencia-backend/internal/invoices"
	"github.com/jpcardenasg/esencia-backend/internal/users"
	"github.com/jpcardenasg/esencia-backend/pkg/config"
	"github.com/jpcardenasg/esencia-backend/pkg/db"
	"github.com/jpcardenasg/esencia-backend/pkg/logger"
	"github.com/jpcardenasg/esencia-backend/pkg/migrate"
	"github.com/jpcardenasg/esencia-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	userRepo := users.NewRepository(dbClient.DB())
	perfumeRepo := catalog.NewPerfumeRepository(dbClient.DB())
	categoryRepo := catalog.NewCategoryRepository(dbClient.DB())
	noteRepo := catalog.NewNoteRepository(dbClient.DB())
	cartRepo := cart.NewRepository(dbClient.DB())
	invoiceRepo := invoices.NewRepository(dbClient.DB())
	customRepo := custom.NewRepository(dbClient.DB())

	authService, err := auth.NewService(userRepo, cfg.JWT, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}
	userService, err := users.NewService(userRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}
	perfumeService, err := catalog.NewPerfumeService(perfumeRepo, categoryRepo, noteRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create perfume service", err)
		os.Exit(1)
	}
	categoryService, err := catalog.NewCategoryService(categoryRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create category service", err)
		os.Exit(1)
	}
	noteService, err := catalog.NewNoteService(noteRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create note service", err)
		os.Exit(1)
	}
	cartService, err := cart.NewService(cartRepo, userRepo, perfumeRepo, invoiceRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}
	invoiceService, err := invoices.NewService(invoiceRepo, cartService)
	if err != nil {
		logg.Error(context.Background(), "failed to create invoice service", err)
		os.Exit(1)
	}
	customService, err := custom.NewService(customRepo, userRepo, noteRepo, dbClient, cfg.Shop.CustomPerfumeImageURL)
	if err != nil {
		logg.Error(context.Background(), "failed to create custom perfume service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, routes.Services{
			Auth:       authService,
			Users:      userService,
			Perfumes:   perfumeService,
			Categories: categoryService,
			Notes:      noteService,
			Cart:       cartService,
			Invoices:   invoiceService,
			Custom:     customService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
