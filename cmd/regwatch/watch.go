package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spiretechnology/go-regwatch"
	"github.com/spiretechnology/go-regwatch/internal/config"
	"golang.org/x/sync/errgroup"
)

var flagConfig string

func init() {
	watchCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "YAML watch list to use instead of KEY arguments")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch [KEY...]",
	Short: "Report every change until interrupted",
	Long: `Report every change until interrupted.

Each key is watched by its own background worker. With --config, keys, filters and the tick
come from a YAML watch list instead of the command line.`,
	Example: `  regwatch watch 'HKLM\SOFTWARE\Microsoft\Windows\CurrentVersion' -r --tick 1s
  regwatch watch --config regwatch.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := watchConfig(args)
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		var eg errgroup.Group
		for _, watch := range cfg.Watches {
			filter, err := watch.ParsedFilter()
			if err != nil {
				return err
			}
			key, err := regwatch.OpenKey(watch.Key)
			if err != nil {
				return err
			}

			w := regwatch.New(key, filter,
				regwatch.WithSubtree(watch.Subtree),
				regwatch.WithTickDuration(cfg.Tick),
				regwatch.WithLogger(logrus.WithField("key", watch.Key)),
			)
			ch := make(chan regwatch.Response)
			if err := w.Start(ctx, ch); err != nil {
				return err
			}

			name := watch.Key
			eg.Go(func() error {
				for resp := range ch {
					printResponse(name, resp)
				}
				return w.Wait()
			})
		}

		// Workers blocked in a watch only notice cancellation after their next change
		errc := make(chan error, 1)
		go func() {
			errc <- eg.Wait()
		}()
		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
			return nil
		}
	},
}

// watchConfig builds the watch list from --config or the positional keys and global flags.
func watchConfig(args []string) (*config.Config, error) {
	if flagConfig != "" {
		if len(args) > 0 {
			return nil, errors.New("KEY arguments cannot be combined with --config")
		}
		dir, name := filepath.Split(flagConfig)
		if dir == "" {
			dir = "."
		}
		return config.Load(os.DirFS(dir), name)
	}

	if len(args) == 0 {
		return nil, errors.New("at least one KEY or --config is required")
	}
	cfg := &config.Config{Tick: flagTick}
	for _, key := range args {
		cfg.Watches = append(cfg.Watches, config.Watch{
			Key:     key,
			Filter:  flagFilter,
			Subtree: flagSubtree,
		})
	}
	return cfg, cfg.Validate()
}
