package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/ferrolab/mcp-mockserver/internal/app"
	"github.com/ferrolab/mcp-mockserver/internal/config"
	"github.com/ferrolab/mcp-mockserver/internal/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	port := flag.Int("port", cfg.Port, "HTTP listen port")
	flag.Parse()

	logger, cleanup, err := logging.New("mockserver")
	if err != nil {
		log.Fatalf("logging setup: %v", err)
	}
	defer cleanup()

	addr := fmt.Sprintf(":%d", *port)
	if err := app.Run(cfg, addr, logger); err != nil {
		logger.WithError(err).Fatal("mock server exited")
	}
}
