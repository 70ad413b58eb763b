package run

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mw8080/emu/cpm"
	"github.com/mw8080/emu/exec"
	"github.com/mw8080/emu/load"
	"github.com/mw8080/emu/machine"
)

func Command() *cobra.Command {
	var cpmMode bool
	var machineMode bool
	var org uint16
	var start uint16
	var maxInstructions uint64
	var trace string
	var verbose bool

	command := &cobra.Command{
		Use:   "run [path to image]",
		Short: "Run Intel 8080 programs",
		Long:  "Run raw Intel 8080 images, CP/M test programs, or machine definitions.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("expected exactly one argument")
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			var traceWriter io.Writer
			if trace != "" {
				traceFile, err := os.Create(trace)
				if err != nil {
					return err
				}
				defer traceFile.Close()

				w := bufio.NewWriter(traceFile)
				defer w.Flush()

				traceWriter = w
			}

			if verbose {
				logger, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				defer logger.Sync()
				machine.SetLogger(logger)
			}

			if !cmd.Flags().Changed("start") {
				start = org
			}

			var err error
			switch {
			case cpmMode:
				err = runCPM(ctx, args[0], traceWriter, maxInstructions)
			case machineMode:
				err = runMachine(ctx, args[0], traceWriter)
			default:
				err = runImage(ctx, args[0], org, start, traceWriter, maxInstructions)
			}
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	command.PersistentFlags().BoolVar(&cpmMode, "cpm", false, "run the image as a CP/M test program")
	command.PersistentFlags().BoolVar(&machineMode, "machine", false, "treat the argument as a machine definition file")
	command.PersistentFlags().Uint16Var(&org, "org", 0, "load the image at this address")
	command.PersistentFlags().Uint16Var(&start, "start", 0, "begin execution at this address (defaults to the load address)")
	command.PersistentFlags().Uint64Var(&maxInstructions, "max-instr", 0, "stop with an error after this many instructions (0 means no limit)")
	command.PersistentFlags().StringVarP(&trace, "trace", "t", "", "write an execution trace to the specified file")
	command.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	return command
}

func runCPM(ctx context.Context, path string, trace io.Writer, max uint64) error {
	program, err := load.ReadROM(path)
	if err != nil {
		return err
	}

	h, err := cpm.New(program)
	if err != nil {
		return err
	}
	h.Echo(os.Stdout)
	if trace != nil {
		h.Trace(trace)
	}

	res, err := h.Run(ctx, max)
	if err != nil {
		return dumpOnFault(h.System(), err)
	}

	machine.Logger().Info("test finished",
		zap.Uint64("instructions", res.Instructions),
		zap.Uint64("cycles", res.Cycles))
	return nil
}

func runMachine(ctx context.Context, path string, trace io.Writer) error {
	def, err := load.ReadDefinition(path)
	if err != nil {
		return err
	}

	m, err := def.Build(exec.NopBus{})
	if err != nil {
		return err
	}
	if trace != nil {
		m.Trace(trace)
	}

	if err := m.Run(ctx); err != nil {
		return dumpOnFault(m.System(), err)
	}
	return nil
}

func runImage(ctx context.Context, path string, org, start uint16, trace io.Writer, max uint64) error {
	image, err := load.ReadROM(path)
	if err != nil {
		return err
	}

	mem := exec.NewMemory(0x10000)
	if err := mem.PutROM(image, org); err != nil {
		return err
	}
	sys := exec.NewSystem(mem, start)

	bus := exec.NopBus{}
	instructions, cycles := uint64(0), uint64(0)
	for {
		in, err := sys.Fetch()
		if err != nil {
			return dumpOnFault(sys, err)
		}
		if trace != nil {
			fmt.Fprintf(trace, "%04x  %s\n", sys.CPU.PC, in.String())
		}

		n, halted, err := sys.Execute(in, bus)
		if err != nil {
			return dumpOnFault(sys, err)
		}
		instructions, cycles = instructions+1, cycles+uint64(n)

		if halted {
			break
		}
		if max != 0 && instructions >= max {
			return fmt.Errorf("no halt after %d instructions", instructions)
		}
		if instructions&0xffff == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
	}

	machine.Logger().Info("cpu halted",
		zap.Uint16("pc", sys.CPU.PC),
		zap.Uint64("instructions", instructions),
		zap.Uint64("cycles", cycles))
	return nil
}

func dumpOnFault(sys *exec.System, err error) error {
	var fault *exec.FaultError
	if errors.As(err, &fault) {
		fmt.Fprintln(os.Stderr, "dumping cpu state after fault")
		sys.CPU.DumpState(os.Stderr)
	}
	return err
}
