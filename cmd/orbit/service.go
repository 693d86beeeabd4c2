package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errNoGroup = errors.New("no active group, pass --group or set group in the config")

func newLogoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logo",
		Short: "Fetch the service logo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body := a.client.GetLogo(cmd.Context())
			return a.print(cmd, status, body)
		},
	}
}

func newPingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check whether the service is running",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.client.IsRunning(cmd.Context()) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", red("not running"), cyan(a.client.BaseURL()))
				return errServiceUnreachable
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", green("running"), cyan(a.client.BaseURL()))
			return nil
		},
	}
}

func newOrgsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "orgs",
		Short: "List the orgs of the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body := a.client.ListOrgs(cmd.Context())
			return a.print(cmd, status, body)
		},
	}
}

func newGroupsCmd(a *app) *cobra.Command {
	groupsCmd := &cobra.Command{
		Use:   "groups",
		Short: "Group discovery",
	}

	groupsCmd.AddCommand(&cobra.Command{
		Use:   "children <group-id>",
		Short: "List the children of a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body := a.client.ListGroupChildren(cmd.Context(), args[0])
			return a.print(cmd, status, body)
		},
	})

	return groupsCmd
}
