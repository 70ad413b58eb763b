package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/spf13/cobra"

	"github.com/mw8080/emu/cmd/emu/dump"
	"github.com/mw8080/emu/cmd/emu/play"
	"github.com/mw8080/emu/cmd/emu/run"
	"github.com/mw8080/emu/exec"
)

var version = "<unknown>"

func configureCLI() *cobra.Command {
	var cpuProfile string
	var memProfile string

	rootCommand := &cobra.Command{
		Use:           "emu",
		Short:         "emu 8080 suite",
		Long:          "emu - a tool suite for the Intel 8080",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cpuProfile != "" {
				f, err := os.Create(cpuProfile)
				if err != nil {
					return err
				}
				pprof.StartCPUProfile(f)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if cpuProfile != "" {
				pprof.StopCPUProfile()
			}

			if memProfile != "" {
				f, err := os.Create(memProfile)
				if err != nil {
					return err
				}
				runtime.GC()
				pprof.WriteHeapProfile(f)
			}

			return nil
		},
	}

	rootCommand.AddCommand(dump.Command())
	rootCommand.AddCommand(play.Command())
	rootCommand.AddCommand(run.Command())

	rootCommand.PersistentFlags().StringVar(&cpuProfile, "cpu", "", "emit Go CPU profile data to this path")
	rootCommand.PersistentFlags().StringVar(&memProfile, "mem", "", "emit Go memory profile data to this path")

	rootCommand.PersistentFlags().MarkHidden("cpu")
	rootCommand.PersistentFlags().MarkHidden("mem")

	return rootCommand
}

func main() {
	rootCommand := configureCLI()

	if err := rootCommand.Execute(); err != nil {
		var fault *exec.FaultError
		if errors.As(err, &fault) {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(2)
		}

		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
