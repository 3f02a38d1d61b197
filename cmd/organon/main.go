// Command organon serves the Organon productivity API over HTTP or as an
// AWS Lambda behind API Gateway.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/spf13/cobra"

	_ "github.com/saulo-duarte/organon/docs"
	"github.com/saulo-duarte/organon/internal/config"
	"github.com/saulo-duarte/organon/internal/container"
)

var (
	Version   = "0.1.0"
	BuildTime = "dev"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "organon",
		Short:         "Organon productivity API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server",
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve(cmd.Context(), configPath)
			},
		},
		&cobra.Command{
			Use:   "lambda",
			Short: "Run as an AWS Lambda handler behind API Gateway (HTTP API)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runLambda(cmd.Context(), configPath)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database schema",
			RunE: func(cmd *cobra.Command, args []string) error {
				return migrate(cmd.Context(), configPath)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "organon version %s (build: %s)\n", Version, BuildTime)
			},
		},
	)

	return cmd
}

func build(ctx context.Context, configPath string) (*container.Container, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := container.Bootstrap(ctx, cfg); err != nil {
		return nil, err
	}
	return container.New(ctx, cfg)
}

func serve(parent context.Context, configPath string) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := build(ctx, configPath)
	if err != nil {
		return err
	}
	defer c.Close()

	srv := newServer(c.Config.Server.Port, c.Handler(), c.FeedHandler.Shutdown)

	errCh := make(chan error, 1)
	go func() {
		config.Logger.WithField("addr", srv.Addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	config.Logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newServer builds the HTTP server; onShutdown runs when Shutdown starts so
// streaming handlers can end before the drain deadline.
func newServer(port string, handler http.Handler, onShutdown ...func()) *http.Server {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	for _, fn := range onShutdown {
		srv.RegisterOnShutdown(fn)
	}
	return srv
}

func runLambda(ctx context.Context, configPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	c, err := build(ctx, configPath)
	if err != nil {
		return err
	}
	defer c.Close()

	adapter := httpadapter.NewV2(c.Handler())
	lambda.Start(adapter.ProxyWithContext)
	return nil
}

func migrate(ctx context.Context, configPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	config.InitLogger(cfg.Log)
	if err := config.Connect(ctx, cfg.Database); err != nil {
		return err
	}
	if err := container.Migrate(config.DB); err != nil {
		return err
	}
	config.Logger.Info("Schema is up to date")
	return nil
}
