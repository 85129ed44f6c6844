// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// printJSON writes a value as indented JSON to the command's stdout.
func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

// newVirtualsCmd builds the virtual-server listing command.
func (a *app) newVirtualsCmd() *cobra.Command {
	var deep bool

	cmd := &cobra.Command{
		Use:   "virtuals",
		Short: "List virtual servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := a.connect(cmd)
			if err != nil {
				return err
			}

			virtuals, err := service.VirtualServers(runContext(cmd), deep)
			if err != nil {
				return err
			}
			return printJSON(cmd, virtuals)
		},
	}
	cmd.Flags().BoolVar(&deep, "deep", false, "include per-virtual client-ssl profile references")

	return cmd
}

// newPoolsCmd builds the pool listing command.
func (a *app) newPoolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pools",
		Short: "List pools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := a.connect(cmd)
			if err != nil {
				return err
			}

			pools, err := service.Pools(runContext(cmd))
			if err != nil {
				return err
			}
			return printJSON(cmd, pools)
		},
	}
}

// newNodesCmd builds the node listing command.
func (a *app) newNodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nodes",
		Short: "List nodes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := a.connect(cmd)
			if err != nil {
				return err
			}

			nodes, err := service.Nodes(runContext(cmd))
			if err != nil {
				return err
			}
			return printJSON(cmd, nodes)
		},
	}
}
