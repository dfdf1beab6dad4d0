package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spiretechnology/go-regwatch"
)

func init() {
	rootCmd.AddCommand(streamCmd)
}

var streamCmd = &cobra.Command{
	Use:   "stream KEY",
	Short: "Report every change by iterating a lazy stream",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := parsedFilter()
		if err != nil {
			return err
		}
		key, err := regwatch.OpenKey(args[0])
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		w := regwatch.New(key, filter,
			regwatch.WithSubtree(flagSubtree),
			regwatch.WithTickDuration(flagTick),
			regwatch.WithLogger(logrus.WithField("key", args[0])),
		)
		s := w.Stream(ctx)
		defer s.Close()

		for resp := range s.All() {
			printResponse(args[0], resp)
		}
		return s.Err()
	},
}
