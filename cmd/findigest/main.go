package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"findigest/internal/app"
	"findigest/internal/config"
	"findigest/internal/logger"
	"findigest/internal/mail"
	"findigest/internal/metrics"
	"findigest/internal/sanitize"
)

func main() {
	fmt.Println("Starting news agent...")

	// Check if we should start HTTP server for monitoring
	if os.Getenv("ENABLE_HTTP_MONITORING") == "true" {
		go startMonitoringServer()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	logger.Init(cfg.Debug)

	username, err := sanitize.Address(cfg.SenderEmail)
	if err != nil {
		fmt.Printf("Sender (raw): %q\n", cfg.SenderEmail)
		for _, d := range sanitize.Describe(cfg.SenderEmail) {
			fmt.Printf("  sender: %s\n", d)
		}
		log.Fatalf("Invalid SENDER_EMAIL: %v", err)
	}

	mailer := mail.NewSender(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: username,
		Password: sanitize.Clean(cfg.EmailPassword),
		Timeout:  cfg.RequestTimeout,
	})

	if err := app.Run(context.Background(), cfg, mailer); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func startMonitoringServer() {
	port := os.Getenv("MONITORING_PORT")
	if port == "" {
		port = "8080"
	}

	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/metrics", metricsHandler)

	log.Printf("Starting monitoring server on port %s", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Printf("Monitoring server error: %v", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	if !stats["is_healthy"].(bool) {
		status = "error"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	response := map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func metricsHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
