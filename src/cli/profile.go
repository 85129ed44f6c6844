// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"github.com/spf13/cobra"

	f5ltm "github.com/H0llyW00dzZ/bigip-cert-reporter/src/internal/f5/ltm"
)

// newProfileCmd builds the client-ssl profile management commands.
func (a *app) newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Create and update client-ssl profiles",
	}

	var createSpec f5ltm.ProfileSpec

	createCmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a client-ssl profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			createSpec.Name = args[0]

			service, err := a.connect(cmd)
			if err != nil {
				return err
			}
			if err := service.CreateClientSSLProfile(runContext(cmd), createSpec); err != nil {
				return err
			}

			a.log.Printf("Created client-ssl profile %s", createSpec.Name)
			return nil
		},
	}
	createCmd.Flags().StringVar(&createSpec.Cert, "cert", "", "certificate object reference")
	createCmd.Flags().StringVar(&createSpec.Key, "key", "", "key object reference")
	createCmd.Flags().StringVar(&createSpec.Chain, "chain", "", "chain certificate object reference")
	createCmd.Flags().StringVar(&createSpec.DefaultsFrom, "defaults-from", "/Common/clientssl", "parent profile to inherit settings from")

	var updateSpec f5ltm.ProfileSpec

	updateCmd := &cobra.Command{
		Use:   "update NAME",
		Short: "Update the cert, key, or chain of a client-ssl profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			service, err := a.connect(cmd)
			if err != nil {
				return err
			}
			if err := service.UpdateClientSSLProfile(runContext(cmd), name, updateSpec); err != nil {
				return err
			}

			a.log.Printf("Updated client-ssl profile %s", name)
			return nil
		},
	}
	updateCmd.Flags().StringVar(&updateSpec.Cert, "cert", "", "certificate object reference")
	updateCmd.Flags().StringVar(&updateSpec.Key, "key", "", "key object reference")
	updateCmd.Flags().StringVar(&updateSpec.Chain, "chain", "", "chain certificate object reference")

	cmd.AddCommand(createCmd, updateCmd)
	return cmd
}
