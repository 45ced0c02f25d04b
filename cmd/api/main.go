package main

import (
	"log"

	"orderhub/config"
	"orderhub/internal/api"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Config error: %s", err)
	}
	api.Run(cfg)
}
