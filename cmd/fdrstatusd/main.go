package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fdrstatusd/internal/config"
	"fdrstatusd/internal/server"
)

var version = "dev"

func main() {
	srv, err := server.New(config.Load(), server.WithVersion(version))
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize server: %v", err)
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		received := <-sig
		log.Printf("INFO: Received %s, shutting down", received)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Stop(ctx); err != nil {
			log.Printf("WARN: Shutdown did not complete cleanly: %v", err)
		}
	}()

	if err := srv.Start(); err != nil {
		log.Fatalf("FATAL: Server failed to start: %v", err)
	}
}
