package play

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mw8080/emu/invaders"
	"github.com/mw8080/emu/load"
)

func Command() *cobra.Command {
	command := &cobra.Command{
		Use:   "play [path to ROM directory]",
		Short: "Play Space Invaders",
		Long: `Play Space Invaders in the terminal.

The ROM directory must hold either a single image named "invaders" or the four
chips invaders.h, invaders.g, invaders.f, and invaders.e.

Keys: a inserts a coin, s starts a one player game, w fires, q and e move.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("expected exactly one argument")
			}
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("play needs a terminal")
			}

			roms, err := load.InvadersROMs(args[0])
			if err != nil {
				return err
			}

			ports := invaders.NewPorts()
			m, err := invaders.NewMachine(ports, roms...)
			if err != nil {
				return err
			}

			game, err := newModel(m, ports)
			if err != nil {
				return err
			}

			final, err := tea.NewProgram(game, tea.WithAltScreen()).Run()
			if err != nil {
				return err
			}
			if game, ok := final.(*model); ok && game.err != nil {
				return game.err
			}
			return nil
		},
	}

	return command
}
