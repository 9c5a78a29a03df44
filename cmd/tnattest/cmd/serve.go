package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/trufnetwork/tnattest/internal/core/api"
	"github.com/trufnetwork/tnattest/internal/core/archive"
	"github.com/trufnetwork/tnattest/internal/core/auth"
	"github.com/trufnetwork/tnattest/internal/core/config"
	"github.com/trufnetwork/tnattest/internal/core/server"
)

const Version = "0.1.0"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gRPC attestation decode service",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("host", "0.0.0.0", "gRPC server host")
	serveCmd.Flags().Int("port", 50061, "gRPC server port")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("host") {
		host, _ := cmd.Flags().GetString("host")
		cfg.Host = host
	}
	if cmd.Flags().Changed("port") {
		port, _ := cmd.Flags().GetInt("port")
		cfg.Port = port
	}
	if archiveURL != "" {
		cfg.ArchiveURL = archiveURL
	}

	// The archive is optional: without one the service decodes but does
	// not persist.
	var queries *archive.Queries
	if cfg.ArchiveURL != "" {
		db, err := archive.Open(cfg.ArchiveURL)
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer db.Close()

		if err := archive.MigrateUp(db); err != nil {
			return fmt.Errorf("failed to migrate archive: %w", err)
		}
		queries, err = archive.LoadQueries(db)
		if err != nil {
			return fmt.Errorf("failed to load queries: %w", err)
		}
	}

	secrets, err := config.HMACSecrets()
	if err != nil {
		return fmt.Errorf("failed to load HMAC secrets: %w", err)
	}
	if len(secrets) == 0 {
		return fmt.Errorf("no HMAC secrets configured (set TN_HMAC_SECRET environment variable)")
	}
	authenticator := auth.NewAuthenticator(secrets)

	service, err := api.NewAttestService(cfg, queries)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	grpcServer, err := server.NewGRPCServer(cfg, service, authenticator)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	log.Printf("Starting tnattest decode service v%s on %s:%d", Version, cfg.Host, cfg.Port)
	errChan := make(chan error, 1)
	go func() {
		errChan <- grpcServer.Start(ctx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case <-sigChan:
		log.Println("Shutting down gracefully...")
		return grpcServer.Shutdown(ctx)
	}
}
