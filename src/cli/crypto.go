// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/bigip-cert-reporter/src/internal/x509/localcert"
)

// applianceUploadDir is where the bulk file-transfer endpoint lands uploaded
// files on the appliance filesystem.
const applianceUploadDir = "/var/config/rest/bulk/"

// newCertCmd builds the certificate upload and install commands.
func (a *app) newCertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cert",
		Short: "Upload and install SSL certificates",
	}

	var force bool

	uploadCmd := &cobra.Command{
		Use:   "upload CERT_FILE",
		Short: "Upload a certificate file to the appliance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			certFile := args[0]

			if !force {
				summary, err := localcert.CheckFileNotExpired(certFile, time.Now())
				if err != nil {
					return err
				}
				a.log.Printf("Certificate %s valid until %s", summary.Subject, summary.NotAfter.Format(time.RFC3339))
			}

			service, err := a.connect(cmd)
			if err != nil {
				return err
			}
			if err := service.UploadFileFrom(runContext(cmd), certFile); err != nil {
				return err
			}

			a.log.Printf("Uploaded %s to %s", certFile, applianceUploadDir+filepath.Base(certFile))
			return nil
		},
	}
	uploadCmd.Flags().BoolVar(&force, "force", false, "upload even if the certificate is already expired")

	var installForce bool

	installCmd := &cobra.Command{
		Use:   "install NAME CERT_FILE",
		Short: "Upload a certificate and install it as a named object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, certFile := args[0], args[1]

			if !installForce {
				summary, err := localcert.CheckFileNotExpired(certFile, time.Now())
				if err != nil {
					return err
				}
				a.log.Printf("Certificate %s valid until %s", summary.Subject, summary.NotAfter.Format(time.RFC3339))
			}

			service, err := a.connect(cmd)
			if err != nil {
				return err
			}

			ctx := runContext(cmd)
			if err := service.UploadFileFrom(ctx, certFile); err != nil {
				return err
			}
			if err := service.InstallCert(ctx, name, applianceUploadDir+filepath.Base(certFile)); err != nil {
				return err
			}

			a.log.Printf("Installed certificate %s from %s", name, certFile)
			return nil
		},
	}
	installCmd.Flags().BoolVar(&installForce, "force", false, "install even if the certificate is already expired")

	cmd.AddCommand(uploadCmd, installCmd)
	return cmd
}

// newKeyCmd builds the private-key install command.
func (a *app) newKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Upload and install private keys",
	}

	installCmd := &cobra.Command{
		Use:   "install NAME KEY_FILE",
		Short: "Upload a private key and install it as a named object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, keyFile := args[0], args[1]

			service, err := a.connect(cmd)
			if err != nil {
				return err
			}

			ctx := runContext(cmd)
			if err := service.UploadFileFrom(ctx, keyFile); err != nil {
				return err
			}
			if err := service.InstallKey(ctx, name, applianceUploadDir+filepath.Base(keyFile)); err != nil {
				return err
			}

			a.log.Printf("Installed key %s from %s", name, keyFile)
			return nil
		},
	}

	cmd.AddCommand(installCmd)
	return cmd
}
