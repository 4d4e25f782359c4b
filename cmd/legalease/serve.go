package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/7Nouman/LegalEase-Phase1/httpapi"
	"github.com/7Nouman/LegalEase-Phase1/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local HTTP gateway",
	Long:  "Start a local HTTP gateway exposing the workspace to a browser UI.",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if serviceURL != "" {
		cfg.ServiceURL = serviceURL
	}

	ws, err := newWorkspace()
	if err != nil {
		return fmt.Errorf("creating workspace: %w", err)
	}
	defer ws.Close()

	handler := httpapi.New(ws)
	srv := &http.Server{
		Addr:    cfg.GatewayAddr,
		Handler: handler.Router(),
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down...")
		cancel()
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("LegalEase gateway listening on %s (service %s)", cfg.GatewayAddr, cfg.ServiceURL)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
