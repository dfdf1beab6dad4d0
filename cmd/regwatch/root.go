package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spiretechnology/go-regwatch"
)

var (
	flagLogLevel string
	flagFilter   []string
	flagSubtree  bool
	flagTick     time.Duration
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warning", "log level (debug, info, warning, error)")
	rootCmd.PersistentFlags().StringSliceVarP(&flagFilter, "filter", "f", []string{"all"}, "changes to watch: name, attributes, last-set, security, thread-agnostic, all")
	rootCmd.PersistentFlags().BoolVarP(&flagSubtree, "subtree", "r", false, "also watch descendant keys")
	rootCmd.PersistentFlags().DurationVar(&flagTick, "tick", regwatch.DefaultTickDuration, "delay before re-arming after a notification")
}

var rootCmd = &cobra.Command{
	Use:   "regwatch",
	Short: "Wait for changes to Windows registry keys",
	Long: `Wait for changes to Windows registry keys.

Keys are given as paths such as HKLM\SOFTWARE\Microsoft\Windows\CurrentVersion.
Only the fact that a change happened is reported, not what changed.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(flagLogLevel)
		if err != nil {
			return err
		}
		logrus.SetLevel(level)
		return nil
	},
}

// signalContext is cancelled on SIGINT/SIGTERM (Ctrl+C)
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func parsedFilter() (regwatch.Filter, error) {
	return regwatch.ParseFilter(flagFilter...)
}
