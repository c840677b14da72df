package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"dalc/internal/driver"
	"dalc/internal/symbols"
	"dalc/internal/types"
	"dalc/internal/ui"
)

type checkOutcome struct {
	report *driver.Report
	err    error
}

// runCheckWithUI runs driver.Check while a progress view renders to out.
func runCheckWithUI(ctx context.Context, out io.Writer, set *symbols.BuiltinSet, u *types.Universe, paths []string, opts driver.Options) (*driver.Report, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		report, err := driver.Check(ctx, set, u, paths, opts)
		outcomeCh <- checkOutcome{report: report, err: err}
		close(events)
	}()

	program := tea.NewProgram(ui.NewProgressModel("checking units", paths, events), tea.WithOutput(out))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.report, uiErr
	}
	return outcome.report, outcome.err
}
