package main

// @title           Shadow Library API
// @version         1.0
// @description     CRUD REST API for a library lending system: authors,
// @description     books, copies, members and checkouts.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/AxelBuee/TestLibBackendShadow/internal/auth"
	"github.com/AxelBuee/TestLibBackendShadow/internal/config"
	"github.com/AxelBuee/TestLibBackendShadow/internal/db"
	"github.com/AxelBuee/TestLibBackendShadow/internal/handler"
	"github.com/AxelBuee/TestLibBackendShadow/internal/middleware"
	"github.com/AxelBuee/TestLibBackendShadow/internal/seed"
)

const appVersion = "1.0.0"

func main() {
	startTime := time.Now()

	cfg := config.Load()

	gin.SetMode(cfg.GinMode)

	database := db.ConnectWithRetry(cfg)

	if cfg.DBReset {
		log.Println("resetting schema and inserting sample data")
		if err := db.Reset(database); err != nil {
			log.Fatalf("resetting schema: %v", err)
		}
		if err := seed.Run(database); err != nil {
			log.Fatalf("seeding sample data: %v", err)
		}
	} else {
		if err := db.Migrate(database); err != nil {
			log.Fatalf("migrating schema: %v", err)
		}
	}

	verifier, err := auth.NewJWKSVerifier(
		context.Background(),
		cfg.JWKSURL(),
		cfg.AuthAudience,
		cfg.AuthIssuer,
		cfg.AuthAlgorithms,
	)
	if err != nil {
		log.Fatalf("building token verifier: %v", err)
	}

	e := gin.Default()

	e.SetTrustedProxies([]string{
		"127.0.0.1",
		"::1",
	})

	e.Use(middleware.RequestID())

	handler.Register(e, database, verifier, startTime, appVersion)

	e.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if err := e.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
