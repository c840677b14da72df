package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dalc/internal/prof"
)

// setupProfiling starts the profilers selected by persistent flags.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	root := cmd.Root().PersistentFlags()
	var cfg prof.Config
	var err error
	if cfg.CPU, err = root.GetString("cpu-profile"); err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if cfg.Heap, err = root.GetString("mem-profile"); err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if cfg.RuntimeTrace, err = root.GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if cfg == (prof.Config{}) {
		return func() {}, nil
	}
	session, err := prof.Start(cfg)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
		}
	}, nil
}
