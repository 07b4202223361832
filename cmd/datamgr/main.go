package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/John-Boik/ibis/internal/commands"
	"github.com/John-Boik/ibis/internal/logging"
)

func main() {
	godotenv.Load()
	logging.InitFromEnv()

	if err := commands.New().Run(context.Background(), os.Args); err != nil {
		logging.Fatalf("datamgr: %v", err)
	}
}
