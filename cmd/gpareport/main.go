package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	var configFile string
	root := &cobra.Command{
		Use:           "gpareport",
		Short:         "Compute GPA summaries and grade distributions from a course grade sheet",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file (settings may also come from GPAREPORT_* env vars)")

	root.AddCommand(newReportCmd(&configFile))
	root.AddCommand(newProfilesCmd())
	root.AddCommand(newServeCmd(&configFile))

	if err := root.Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, ee.msg)
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func exitError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}
