package dump

import (
	"bufio"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/mw8080/emu/disasm"
	"github.com/mw8080/emu/load"
)

func Command() *cobra.Command {
	var org uint16
	var stats bool

	command := &cobra.Command{
		Use:   "dump [path to image]",
		Short: "Dump Intel 8080 images",
		Long:  "Dump Intel 8080 images as assembly listings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("expected exactly one argument")
			}
			image, err := load.ReadROM(args[0])
			if err != nil {
				return err
			}

			w := bufio.NewWriter(os.Stdout)
			defer w.Flush()

			if stats {
				return disasm.WriteStats(w, disasm.Stats(image))
			}
			return disasm.Print(w, image, org)
		},
	}

	command.PersistentFlags().Uint16Var(&org, "org", 0, "address of the first byte of the image")
	command.PersistentFlags().BoolVarP(&stats, "stats", "s", false, "dump image statistics in CSV format")

	return command
}
