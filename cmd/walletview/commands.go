package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/walletview/internal/app"
	"github.com/dshills/walletview/internal/config"
	"github.com/dshills/walletview/internal/i18n"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "walletview",
		Short:         "Run the hardware wallet creation wizard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newVersionCmd(), newEnvCmd(), newLocalesCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var (
		opts         app.Options
		printMetrics bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Create a wallet on the configured device",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWizard(cmd, opts, printMetrics)
		},
	}
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (.toml, .yaml)")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "Override logging.level")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Reload the configuration file when it changes")
	cmd.Flags().BoolVar(&printMetrics, "print-metrics", false, "Print collected metric families on exit (needs metrics.enabled)")
	return cmd
}

func runWizard(cmd *cobra.Command, opts app.Options, printMetrics bool) error {
	application, err := app.New(opts)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	// Ensure cleanup on all exit paths
	defer application.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := application.Run(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "wizard %s\n", res.State)
	fmt.Fprintf(out, "wallet created: %t\n", res.WalletCreated)
	if res.BackupLocation != "" {
		fmt.Fprintf(out, "cloud backups: %s\n", res.BackupLocation)
	}

	if printMetrics {
		if err := application.Shutdown(); err != nil {
			return err
		}
		return writeMetrics(cmd, application)
	}
	return nil
}

func writeMetrics(cmd *cobra.Command, application *app.Application) error {
	g := application.Gatherer()
	if g == nil {
		return fmt.Errorf("metrics are disabled, set metrics.enabled")
	}
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d\n", mf.GetName(), len(mf.GetMetric()))
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "walletview %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

func newEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the environment variables that override settings",
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range config.EnvVars() {
				value, ok := os.LookupEnv(name)
				if !ok {
					value = "(unset)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", name, value)
			}
		},
	}
}

func newLocalesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List the bundled message locales",
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := i18n.Load()
			if err != nil {
				return err
			}
			for _, tag := range catalog.Locales() {
				fmt.Fprintln(cmd.OutOrStdout(), tag)
			}
			return nil
		},
	}
}
