// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	f5report "github.com/H0llyW00dzZ/bigip-cert-reporter/src/internal/f5/report"
)

// newReportCmd builds the expiring-certificate report command.
func (a *app) newReportCmd() *cobra.Command {
	var (
		expiresInDays int
		skipVirtuals  bool
		format        string
		concurrency   int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Report expired and soon-to-expire certificates",
		Long:  "Lists every SSL certificate expiring before the configured horizon (or already expired), together with the client-ssl profiles referencing it and, unless disabled, the virtual servers using those profiles.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "table" && format != "json" {
				return fmt.Errorf("unknown format %q (expected table or json)", format)
			}

			service, err := a.connect(cmd)
			if err != nil {
				return err
			}

			opts := f5report.Options{
				ExpiresInDays: a.cfg.Report.ExpiresInDays,
				FetchVirtuals: a.cfg.Report.FetchVirtuals,
			}
			if cmd.Flags().Changed("expires-in-days") {
				opts.ExpiresInDays = expiresInDays
			}
			if skipVirtuals {
				opts.FetchVirtuals = false
			}
			if cmd.Flags().Changed("concurrency") && concurrency > 0 {
				service.Concurrency = concurrency
			}

			start := time.Now()
			rows, err := f5report.NewReporter(service).GetExpiringOrExpiredCertificates(runContext(cmd), opts)
			if err != nil {
				return err
			}

			switch format {
			case "json":
				out, err := f5report.RenderJSON(rows)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
			default:
				fmt.Fprintln(cmd.OutOrStdout(), f5report.RenderTable(rows))
			}

			a.log.Printf("Found %d expiring or expired certificate reference(s) in %s", len(rows), formatDuration(time.Since(start)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&expiresInDays, "expires-in-days", "d", 30, "report certificates expiring before now plus this many days")
	cmd.Flags().BoolVar(&skipVirtuals, "skip-virtuals", false, "skip virtual-server correlation (faster on large appliances)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table or json")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "worker bound for per-virtual profile fetches (default: config file or 8)")

	return cmd
}
