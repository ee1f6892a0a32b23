package main

import (
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"agri-bnpl-engine/internal/handlers"
	"agri-bnpl-engine/internal/utils"
)

func main() {
	if err := utils.InitLogger("info"); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer utils.Sync()

	handler, err := handlers.NewHealthHandler()
	if err != nil {
		log.Fatalf("Failed to initialize health handler: %v", err)
	}
	defer handler.Close()

	lambda.Start(handler.Handle)
}
