package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/donspeedie/CRM/internal/config"
	"github.com/donspeedie/CRM/internal/logger"
	"github.com/donspeedie/CRM/internal/service"
	"github.com/donspeedie/CRM/internal/store"
)

// Usage example on the command line:
// > PORT=8080 FIREBASE_PROJECT_ID=my-crm JWT_SECRET=change-me GIN_MODE=release go run main.go
//
// Credentials can also come from a .env file, as written by the credential
// extraction tooling of the enclosing project.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("could not load configuration", err)
		panic(err)
	}
	if err := logger.Init(&cfg.LogConfig, gin.Mode()); err != nil {
		fmt.Println("could not initialize logger", err)
		panic(err)
	}
	defer zap.L().Sync()

	ctx := context.Background()
	client, err := store.NewClient(ctx, &cfg.FirestoreConfig)
	if err != nil {
		zap.L().Fatal("could not connect to the document store", zap.Error(err))
	}

	contactStore := store.NewContactStore(client, cfg.ContactsCollection)
	interactionStore := store.NewInteractionStore(client, cfg.InteractionsCollection, contactStore)
	service.SetupStores(contactStore, interactionStore)

	router := service.SetupHttpRouter(cfg)
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.L().Info("starting service", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		zap.L().Fatal("server stopped", zap.Error(err))
	}
}
