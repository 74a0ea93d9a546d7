package main

import (
	"log"

	"github.com/alpinesboltltd/boltz-rag/internal/app"
	"github.com/alpinesboltltd/boltz-rag/internal/config"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func main() {
	godotenv.Load(".env")
	var cfg config.Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatal(err)
	}
	app.Run(&cfg)
}
