package main

import (
	"fmt"
	"net/http"

	"github.com/foundry/orbit/internal/orbitsdk"
	"github.com/spf13/cobra"
)

// syncResult is what push and pull print: the accepted status and the ids to poll
type syncResult struct {
	Status       int               `json:"status" yaml:"status"`
	Direction    string            `json:"direction" yaml:"direction"`
	Target       string            `json:"target" yaml:"target"`
	Transactions []syncTransaction `json:"transactions" yaml:"transactions"`
}

type syncTransaction struct {
	Filepath      string `json:"filepath" yaml:"filepath"`
	TransactionID string `json:"transaction_id" yaml:"transaction_id"`
}

func newSyncCmd(a *app) *cobra.Command {
	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Request file syncs and poll their status",
	}

	syncCmd.AddCommand(
		newSyncRequestCmd(a, orbitsdk.SyncUp, "push", "Upload files from the target into the mount"),
		newSyncRequestCmd(a, orbitsdk.SyncDown, "pull", "Download files from the mount into the target"),
		newSyncStatusCmd(a),
	)

	return syncCmd
}

func newSyncRequestCmd(a *app, direction orbitsdk.SyncDirection, use, short string) *cobra.Command {
	var (
		target   string
		hash     string
		modified string
		metadata map[string]string
	)

	cmd := &cobra.Command{
		Use:   use + " <mount-id> <file>...",
		Short: short,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			group, err := a.group()
			if err != nil {
				return err
			}

			mountID, files := args[0], args[1:]
			payload := orbitsdk.NewSyncPayload(direction, orbitsdk.SyncTarget{Path: target})
			for _, file := range files {
				src := orbitsdk.NewSyncSource(file, orbitsdk.NewTransactionID())
				src.Hash = hash
				src.LastModified = modified
				for k, v := range metadata {
					src.Metadata[k] = v
				}
				payload.Sources = append(payload.Sources, src)
			}

			status, err := a.client.RequestSync(cmd.Context(), group, mountID, payload)
			if err != nil {
				return err
			}
			if err := checkStatus(status); err != nil {
				return err
			}

			result := syncResult{Status: status, Direction: direction.String(), Target: target}
			for _, src := range payload.Sources {
				a.log.Info("sync requested", "file", src.Filepath, "transaction", src.TransactionID)
				result.Transactions = append(result.Transactions, syncTransaction{
					Filepath:      src.Filepath,
					TransactionID: src.TransactionID,
				})
			}
			return render(cmd.OutOrStdout(), result, a.cfg.Output)
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", "destination path of the sync")
	cmd.Flags().StringVar(&hash, "hash", "", "content hash, when known")
	cmd.Flags().StringVar(&modified, "last-modified", "", "last modified timestamp, defaults to the upload time")
	cmd.Flags().StringToStringVarP(&metadata, "metadata", "m", nil, "metadata as key=value, repeatable")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func newSyncStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status <mount-id> [transaction-id]",
		Short: "Show all sync transactions of a mount, or a single one",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			group, err := a.group()
			if err != nil {
				return err
			}

			var transactionID string
			if len(args) == 2 {
				transactionID = args[1]
			}

			status, body := a.client.GetSyncStatus(cmd.Context(), group, args[0], transactionID)
			if status == http.StatusNotFound && transactionID != "" {
				return fmt.Errorf("unknown transaction %q", transactionID)
			}
			return a.print(cmd, status, body)
		},
	}
}
