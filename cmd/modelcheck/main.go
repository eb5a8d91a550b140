// Command modelcheck lists the remote models reachable with the configured
// API key, so a misbehaving fallback chain can be diagnosed without running
// the full server.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"go-image-describer/internal/config"
	"go-image-describer/internal/vision"
)

func main() {
	apiKey := strings.TrimSpace(os.Getenv("GOOGLE_API_KEY"))
	if apiKey == "" {
		log.Fatal("GOOGLE_API_KEY is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := vision.NewGeminiClient(ctx, apiKey)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	available, err := client.ListModels(ctx)
	if err != nil {
		log.Fatalf("Failed to list models: %v", err)
	}

	supported := make(map[string]bool, len(available))
	fmt.Printf("Available models (%d):\n", len(available))
	for _, m := range available {
		generates := false
		for _, action := range m.SupportedActions {
			if action == "generateContent" {
				generates = true
				break
			}
		}
		supported[m.Name] = generates
		marker := " "
		if generates {
			marker = "*"
		}
		fmt.Printf("  %s %s\n", marker, m.Name)
	}
	fmt.Println("(* supports generateContent)")

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	fmt.Println("\nConfigured candidates:")
	for _, candidate := range cfg.CandidateModels {
		status := "NOT AVAILABLE"
		if generates, ok := supported[candidate]; ok {
			if generates {
				status = "ok"
			} else {
				status = "available, no generateContent"
			}
		}
		fmt.Printf("  %-34s %s\n", candidate, status)
	}
}
