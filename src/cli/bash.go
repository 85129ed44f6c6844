// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newBashCmd builds the remote shell command.
func (a *app) newBashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bash COMMAND",
		Short: "Run a shell command on the appliance",
		Long:  "Executes a shell command on the appliance through the util/bash endpoint and prints its output. Requires an account with advanced shell access.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := a.connect(cmd)
			if err != nil {
				return err
			}

			output, err := service.RunBashCommand(runContext(cmd), args[0])
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), output)
			return nil
		},
	}
}
