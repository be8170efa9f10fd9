package ui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"liquidlint/internal/diag"
	"liquidlint/internal/runner"
)

type outcome struct {
	report *diag.Report
	err    error
}

// RunWithProgress executes runner.Run while drawing progress to out.
func RunWithProgress(ctx context.Context, title string, out io.Writer, opts runner.Options) (*diag.Report, error) {
	events := make(chan runner.Event, 256)
	outcomeCh := make(chan outcome, 1)

	go func() {
		opts.Progress = runner.ChannelSink{Ch: events}
		report, err := runner.Run(ctx, opts)
		outcomeCh <- outcome{report: report, err: err}
		close(events)
	}()

	program := tea.NewProgram(NewProgressModel(title, events), tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	if uiErr != nil {
		// дочитываем, чтобы раннер не заблокировался на полном канале
		go func() {
			for range events {
			}
		}()
	}
	res := <-outcomeCh
	if uiErr != nil && res.err == nil {
		return res.report, uiErr
	}
	return res.report, res.err
}
