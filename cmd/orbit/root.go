package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fatih/color"
	"github.com/foundry/orbit/internal/orbitsdk"
	"github.com/foundry/orbit/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	red   = color.New(color.FgHiRed, color.Bold).SprintFunc()
	green = color.New(color.FgHiGreen).SprintFunc()
	cyan  = color.New(color.FgHiCyan).SprintFunc()
)

// app is the state shared by all commands of one invocation
type app struct {
	v        *viper.Viper
	cfg      *cliConfig
	log      *slog.Logger
	client   *orbitsdk.Client
	closeLog func() error
}

func newApp() *app {
	a := &app{v: viper.New()}
	setDefaults(a.v)
	return a
}

// execute runs rootCmd and releases the log file even when the command
// fails, cobra skips post-run hooks on error.
func (a *app) execute(ctx context.Context, rootCmd *cobra.Command) error {
	err := rootCmd.ExecuteContext(ctx)
	return errors.Join(err, a.teardown())
}

func (a *app) rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "orbit",
		Short:         "Orbit local sync service client",
		Version:       version.Detailed(),
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.SortFlags = false
	flags.StringP("config", "c", "", "config file (default ~/.orbit/config.json)")
	flags.String("base-url", orbitsdk.DefaultBaseURL, "Orbit service endpoint")
	flags.StringP("group", "g", "", "active group for group scoped commands")
	flags.StringP("output", "o", outputJSON, "output format: json or yaml")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("log-file", "", "also write logs to this file")
	flags.Duration("timeout", 0, "request timeout, 0 keeps the client default")
	bindFlags(a.v, rootCmd)

	rootCmd.AddCommand(
		newLogoCmd(a),
		newPingCmd(a),
		newOrgsCmd(a),
		newGroupsCmd(a),
		newMountsCmd(a),
		newSyncCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd, a.v)
	if err != nil {
		return err
	}

	level, _ := cfg.level()
	logger, closeLog, err := newLogger(cmd.ErrOrStderr(), level, cfg.LogFile)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	client, err := orbitsdk.New(cfg.sdkConfig(logger))
	if err != nil {
		_ = closeLog()
		return err
	}

	// config is valid, usage output is no longer useful
	cmd.SilenceUsage = true

	a.cfg = cfg
	a.log = logger
	a.client = client
	a.closeLog = closeLog
	return nil
}

func (a *app) teardown() error {
	if a.closeLog == nil {
		return nil
	}
	closeLog := a.closeLog
	a.closeLog = nil
	return closeLog()
}

// group returns the active group or fails when none is configured
func (a *app) group() (string, error) {
	if a.cfg.Group == "" {
		return "", errNoGroup
	}
	return a.cfg.Group, nil
}

// print checks the status and renders the body of a successful call
func (a *app) print(cmd *cobra.Command, status int, body any) error {
	if err := checkStatus(status); err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), body, a.cfg.Output)
}
