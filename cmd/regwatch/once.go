package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spiretechnology/go-regwatch"
)

var flagTimeout time.Duration

func init() {
	onceCmd.Flags().DurationVarP(&flagTimeout, "timeout", "t", time.Minute, "how long to wait, 0 to poll, negative to wait forever")
	rootCmd.AddCommand(onceCmd)
}

var onceCmd = &cobra.Command{
	Use:     "once KEY",
	Short:   "Wait for a single change",
	Example: `  regwatch once 'HKLM\SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall' -r --timeout 60s`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := parsedFilter()
		if err != nil {
			return err
		}
		key, err := regwatch.OpenKey(args[0])
		if err != nil {
			return err
		}
		defer key.Close()

		timeout := regwatch.FromDuration(flagTimeout)
		if flagTimeout < 0 {
			timeout = regwatch.Infinite
		}
		resp, err := key.Watch(filter, flagSubtree, timeout)
		if err != nil {
			return err
		}
		printResponse(args[0], resp)
		return nil
	},
}
