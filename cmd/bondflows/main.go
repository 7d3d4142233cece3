package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/meenmo/fixbond/config"
	"github.com/meenmo/fixbond/internal/logging"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// errFailed reports that at least one output row carries an error; the rows
// themselves have already been written.
var errFailed = errors.New("one or more bonds failed")

type app struct {
	cfg    config.Config
	logger *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "bondflows:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.DefaultConfig, logger: logging.Discard()}

	cmd := &cobra.Command{
		Use:           "bondflows",
		Short:         "Build fixed-coupon bond cash-flow ledgers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logging.New(cmd.ErrOrStderr(), "bondflows", cfg.LogLevel, cfg.LogFormat)
			return nil
		},
	}

	cmd.AddCommand(ledgerCmd(a), scheduleCmd(a), versionCmd())
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the bondflows version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "bondflows", version)
			return err
		},
	}
}
