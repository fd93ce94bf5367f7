package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kk-code-lab/mdview/internal/config"
	"github.com/kk-code-lab/mdview/internal/logging"
)

type ctxKey string

const envKey ctxKey = "env"

// env is what every subcommand needs after configuration is resolved.
type env struct {
	settings config.Settings
	log      logging.Logger
}

// Execute builds the root command and runs it until completion or until
// the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd constructs the Cobra root command and wires dependencies.
func NewRootCmd() *cobra.Command {
	var cfgPath string
	var logPath string

	cmd := &cobra.Command{
		Use:           "mdview [FILE]",
		Short:         "Terminal markdown viewer with HTML export",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			if err := config.Load(cmd.Context(), v); err != nil {
				return err
			}
			if logPath != "" {
				v.Set("log_file", logPath)
			}
			settings, err := config.FromViper(v)
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			logger, err := logging.New(settings.LogFile)
			if err != nil {
				return err
			}
			ctx := context.WithValue(cmd.Context(), envKey, &env{settings: settings, log: logger})
			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return getEnv(cmd).log.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runView(cmd, args[0])
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (toml|yaml)")
	cmd.PersistentFlags().StringVar(&logPath, "log", "", "append diagnostics to this file")

	cmd.AddCommand(newViewCmd())
	cmd.AddCommand(newCatCmd())
	cmd.AddCommand(newHTMLCmd())
	cmd.AddCommand(newBlocksCmd())
	cmd.AddCommand(newOutlineCmd())
	cmd.AddCommand(newBookmarksCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

func getEnv(cmd *cobra.Command) *env {
	v := cmd.Context().Value(envKey)
	if v == nil {
		fmt.Fprintln(os.Stderr, "internal error: configuration not loaded")
		os.Exit(1)
	}
	return v.(*env)
}
