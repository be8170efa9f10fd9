package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"liquidlint/internal/config"
	"liquidlint/internal/diagfmt"
	"liquidlint/internal/finder"
	"liquidlint/internal/lint"
	"liquidlint/internal/trace"
	"liquidlint/internal/version"
)

// Exit codes follow sysexits(3).
const (
	exitOK       = 0
	exitUsage    = 64
	exitDataErr  = 65
	exitNoInput  = 67
	exitSoftware = 70
	exitConfig   = 78
)

const bugReportURL = "https://github.com/liquid-lint/liquid-lint/issues"

// errLintsFailed signals issues with error severity; the report was already printed.
var errLintsFailed = errors.New("issues with error severity found")

type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usageErrorf(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// exitCode maps a run error to its exit status.
func exitCode(err error) int {
	var (
		cfgErr     *config.Error
		pathErr    *finder.InvalidPathError
		nameErr    *lint.NoSuchLinterError
		usageErr   *usageError
		reporterEr *diagfmt.UnknownReporterError
		parseErr   *lint.ParseError
	)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errLintsFailed), errors.As(err, &parseErr):
		return exitDataErr
	case errors.As(err, &cfgErr):
		return exitConfig
	case errors.As(err, &pathErr), errors.Is(err, lint.ErrNoLinters):
		return exitNoInput
	case errors.As(err, &nameErr), errors.As(err, &usageErr), errors.As(err, &reporterEr):
		return exitUsage
	}
	return exitSoftware
}

// report prints err the way its kind requires and returns the exit code.
func report(cmd *cobra.Command, err error) int {
	code := exitCode(err)
	red := color.New(color.FgRed)
	switch {
	case code == exitOK, errors.Is(err, errLintsFailed):
	case code == exitUsage:
		cmd.PrintErrln(red.Sprint(err.Error()))
		cmd.PrintErrf("Run `%s --help` for usage documentation\n", version.Name)
	case code == exitSoftware:
		cmd.PrintErrln(color.New(color.FgRed, color.Bold).Sprint(err.Error()))
		dumpRing(cmd)
		cmd.PrintErrf("%s %s\n", color.YellowString("Report this bug at"), bugReportURL)
		cmd.PrintErrln(color.GreenString("To help fix this issue, please include:"))
		cmd.PrintErrln("- The above error and trace")
		cmd.PrintErrf("- liquid-lint version: %s\n", version.Version)
	default:
		cmd.PrintErrln(red.Sprint(err.Error()))
	}
	return code
}

// dumpRing writes buffered trace events after an unexpected failure.
func dumpRing(cmd *cobra.Command) {
	ring, ok := trace.Ring(trace.FromContext(cmd.Context()))
	if !ok {
		return
	}
	var err error
	if file := ring.LastFile(); file != "" {
		cmd.PrintErrf("trace (most recent events of %s):\n", file)
		err = ring.DumpFile(cmd.ErrOrStderr(), file, trace.FormatText)
	} else {
		cmd.PrintErrln("trace (most recent events):")
		err = ring.Dump(cmd.ErrOrStderr(), trace.FormatText)
	}
	if err != nil {
		cmd.PrintErrf("trace: dump error: %v\n", err)
	}
}
