// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/bigip-cert-reporter/src/internal/config"
	f5client "github.com/H0llyW00dzZ/bigip-cert-reporter/src/internal/f5/client"
	f5ltm "github.com/H0llyW00dzZ/bigip-cert-reporter/src/internal/f5/ltm"
	"github.com/H0llyW00dzZ/bigip-cert-reporter/src/logger"
)

// Operation tracking for the entrypoint's completion messages.
var (
	// OperationPerformed indicates whether a command ran against an appliance.
	OperationPerformed bool
	// OperationPerformedSuccessfully indicates whether that command succeeded.
	OperationPerformedSuccessfully bool
)

// app carries the flag state and lazily built appliance connection shared by
// all subcommands.
type app struct {
	log logger.Logger

	configPath string
	host       string
	username   string
	password   string
	insecure   bool
	timeout    int

	cfg     *config.Config
	service *f5ltm.Service
}

// Execute runs the root command and its subcommands.
func Execute(ctx context.Context, version string, log logger.Logger) error {
	OperationPerformed = false
	OperationPerformedSuccessfully = false

	a := &app{log: log}

	rootCmd := &cobra.Command{
		Use:           "bigip-cert-reporter",
		Short:         "BIG-IP expiring-certificate reporter",
		Long:          "Reports SSL certificates on an F5 BIG-IP appliance that are expired or close to expiry, cross-referenced with the client-ssl profiles and virtual servers using them, and manages certificate, key, and profile objects.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "path to a JSON or YAML config file (default: $BIGIP_CONFIG_FILE)")
	flags.StringVar(&a.host, "host", "", "appliance management address (default: $BIGIP_HOST or config file)")
	flags.StringVarP(&a.username, "username", "u", "", "iControl REST username (default: $BIGIP_USERNAME or config file)")
	flags.StringVarP(&a.password, "password", "p", "", "iControl REST password (default: $BIGIP_PASSWORD or config file)")
	flags.BoolVarP(&a.insecure, "insecure", "k", false, "skip TLS verification of the management endpoint")
	flags.IntVar(&a.timeout, "timeout", 0, "per-request timeout in seconds (default: config file or 30)")

	rootCmd.AddCommand(
		a.newReportCmd(),
		a.newCertCmd(),
		a.newKeyCmd(),
		a.newProfileCmd(),
		a.newVirtualsCmd(),
		a.newPoolsCmd(),
		a.newNodesCmd(),
		a.newBashCmd(),
	)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil && OperationPerformed {
		OperationPerformedSuccessfully = true
	}
	return err
}

// connect loads configuration, applies flag overrides, and builds the
// appliance service. The result is cached for the lifetime of the command.
func (a *app) connect(cmd *cobra.Command) (*f5ltm.Service, error) {
	if a.service != nil {
		return a.service, nil
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}

	if a.host != "" {
		cfg.Connection.Host = a.host
	}
	if a.username != "" {
		cfg.Connection.Username = a.username
	}
	if a.password != "" {
		cfg.Connection.Password = a.password
	}
	if a.insecure {
		cfg.Connection.InsecureSkipVerify = true
	}
	if a.timeout > 0 {
		cfg.Connection.Timeout = a.timeout
	}

	api, err := f5client.New(cfg.ClientConfig())
	if err != nil {
		return nil, err
	}

	service := f5ltm.NewService(api)
	service.Concurrency = cfg.Report.Concurrency

	a.cfg = cfg
	a.service = service
	OperationPerformed = true
	return service, nil
}

// runContext returns the command context, guarding against callers that
// never set one.
func runContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// formatDuration renders elapsed wall time for status messages.
func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}
