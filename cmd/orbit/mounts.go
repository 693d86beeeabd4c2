package main

import (
	"github.com/spf13/cobra"
)

func newMountsCmd(a *app) *cobra.Command {
	mountsCmd := &cobra.Command{
		Use:   "mounts",
		Short: "Mount enumeration and file listing",
	}

	mountsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the mounts of the active group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			group, err := a.group()
			if err != nil {
				return err
			}
			status, body := a.client.ListMounts(cmd.Context(), group)
			return a.print(cmd, status, body)
		},
	})

	var path string
	filesCmd := &cobra.Command{
		Use:   "files <mount-id>",
		Short: "List the files of a mount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			group, err := a.group()
			if err != nil {
				return err
			}
			status, body := a.client.ListMountFiles(cmd.Context(), group, args[0], path)
			return a.print(cmd, status, body)
		},
	}
	filesCmd.Flags().StringVarP(&path, "path", "p", "", "directory inside the mount")
	mountsCmd.AddCommand(filesCmd)

	return mountsCmd
}
