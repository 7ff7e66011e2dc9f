package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/ferrolab/mcp-mockserver/internal/config"
	"github.com/ferrolab/mcp-mockserver/internal/gcscheck"
)

func main() {
	_ = godotenv.Load()

	credsPath, ok := config.CredentialsPath()
	if !ok {
		log.Fatalf("%s must point at a service-account credentials file", config.EnvCredentialsFile)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	res, err := gcscheck.Verify(ctx, credsPath)
	if err != nil {
		log.Fatalf("credential check failed: %v", err)
	}

	fmt.Printf("credentials OK for project %s\n", res.ProjectID)
	if len(res.Buckets) == 0 {
		fmt.Println("no buckets visible (listing permitted, project empty)")
		return
	}
	for _, name := range res.Buckets {
		fmt.Printf("  bucket: %s\n", name)
	}
	if res.Truncated {
		fmt.Println("  ...")
	}
	os.Exit(0)
}
