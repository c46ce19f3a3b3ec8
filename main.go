package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/andareed/siftly-gallery/clipboard"
	"github.com/andareed/siftly-gallery/config"
	"github.com/andareed/siftly-gallery/dialogstore"
	"github.com/andareed/siftly-gallery/logging"
	"github.com/andareed/siftly-gallery/metrics"
	"github.com/andareed/siftly-gallery/replay"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	debugFile  string
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "sfgallery [flags] <catalog.csv|catalog.json>",
		Short:         "Browse a model catalog, then review, report and collect its resources",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowser(cmd.Context(), opts, args[0])
		},
	}
	cmd.PersistentFlags().StringVar(&opts.debugFile, "debug", "", "write debug logs to file")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default <user config dir>/sfgallery/config.toml)")

	cmd.AddCommand(newVersionCmd(), newConfigCmd(), newReplayCmd(opts))
	return cmd
}

// setup loads config and starts logging. --debug overrides log.file.
func setup(opts *rootOptions) (config.Config, func(), error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	if opts.debugFile != "" {
		cfg.Log.File = opts.debugFile
	}
	cleanup, err := logging.SetupLogging(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("setup logging: %w", err)
	}
	return cfg, cleanup, nil
}

func runBrowser(ctx context.Context, opts *rootOptions, path string) error {
	cfg, cleanup, err := setup(opts)
	if err != nil {
		return err
	}
	defer cleanup()
	logging.Infof("sfgallery %s: started on %s", Version, path)

	data, err := loadCatalog(path, cfg.Collections)
	if err != nil {
		return fmt.Errorf("failed to load %q: %w", path, err)
	}

	rec := metrics.NewRecorder()
	m := newModel(data, hostDeps{
		cfg:       cfg,
		copier:    clipboard.System{Out: os.Stdout},
		storeOpts: []dialogstore.Option{dialogstore.WithObserver(rec)},
		stackOpts: []dialogstore.StackOption{dialogstore.WithStackObserver(rec)},
	})
	m.InitialPath = path
	m.ui.lastDir = filepath.Dir(path)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if cfg.Metrics.Addr != "" {
		g.Go(func() error { return rec.Serve(gctx, cfg.Metrics.Addr, nil) })
	}
	g.Go(func() error {
		defer cancel()
		_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(gctx)).Run()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	})
	return g.Wait()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Version:", Version)
		},
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write the default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				dir, err := config.Dir()
				if err != nil {
					return err
				}
				path = filepath.Join(dir, "config.toml")
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
			return nil
		},
	})
	return cmd
}

func newReplayCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Run a dialog script headlessly and print the stack after every step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cleanup, err := setup(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open script: %w", err)
			}
			defer f.Close()

			script, err := replay.Parse(f)
			if err != nil {
				return err
			}
			states, runErr := replay.NewRunner().Run(cmd.Context(), script)
			if err := replay.Write(cmd.OutOrStdout(), states); err != nil {
				return err
			}
			return runErr
		},
	}
}
