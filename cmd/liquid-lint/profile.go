package main

import (
	"github.com/spf13/cobra"

	"liquidlint/internal/prof"
)

func startProfiling(cmd *cobra.Command) (func(), error) {
	var opts prof.Options
	var err error
	if opts.CPU, err = cmd.Flags().GetString("cpuprofile"); err != nil {
		return nil, err
	}
	if opts.Mem, err = cmd.Flags().GetString("memprofile"); err != nil {
		return nil, err
	}
	if opts.Runtime, err = cmd.Flags().GetString("runtime-trace"); err != nil {
		return nil, err
	}
	if opts == (prof.Options{}) {
		return func() {}, nil
	}
	session, err := prof.Start(opts)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			cmd.PrintErrf("profile: %v\n", err)
		}
	}, nil
}
