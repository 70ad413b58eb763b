package play

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mw8080/emu/invaders"
	"github.com/mw8080/emu/machine"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#1E8449")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// keyHold is how long a key press keeps its input bit raised. Terminals
// do not report key releases, so a held key relies on auto-repeat to
// refresh the bit before it expires.
const keyHold = 200 * time.Millisecond

var keymap = map[string]uint8{
	"a": invaders.BitCoin,
	"s": invaders.BitStart,
	"w": invaders.BitFire,
	"q": invaders.BitLeft,
	"e": invaders.BitRight,
}

type model struct {
	machine *machine.Machine
	ports   *invaders.Ports
	vram    []byte

	pressed map[string]time.Time
	halted  bool
	err     error
}

func newModel(m *machine.Machine, ports *invaders.Ports) (*model, error) {
	vram, err := invaders.VRAM(m.System().Mem)
	if err != nil {
		return nil, err
	}
	return &model{
		machine: m,
		ports:   ports,
		vram:    vram,
		pressed: map[string]time.Time{},
	}, nil
}

type frameMsg time.Time

func (m *model) tick() tea.Cmd {
	return tea.Tick(m.machine.FrameInterval(), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *model) Init() tea.Cmd {
	return m.tick()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" || key == "esc" {
			return m, tea.Quit
		}
		if bit, ok := keymap[key]; ok {
			m.ports.SetInputBit(1, bit)
			m.pressed[key] = time.Now().Add(keyHold)
		}

	case frameMsg:
		now := time.Time(msg)
		for key, deadline := range m.pressed {
			if now.After(deadline) {
				m.ports.ClearInputBit(1, keymap[key])
				delete(m.pressed, key)
			}
		}

		halted, err := m.machine.RunFrame()
		if err != nil {
			m.err = err
			return m, tea.Quit
		}
		if halted {
			m.halted = true
			return m, tea.Quit
		}
		return m, m.tick()
	}

	return m, nil
}

// cell reports whether any pixel in the 2x2 block at (x, y) is lit.
func (m *model) cell(x, y int) bool {
	return invaders.At(m.vram, x, y) || invaders.At(m.vram, x+1, y) ||
		invaders.At(m.vram, x, y+1) || invaders.At(m.vram, x+1, y+1)
}

// View draws the screen with half blocks. Each character covers two
// columns and four rows of pixels, so the 224x256 raster lands in a
// 112x64 cell grid.
func (m *model) View() string {
	if m.err != nil {
		return errorStyle.Render("error: "+m.err.Error()) + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Space Invaders"))
	b.WriteString("\n")

	for y := 0; y < invaders.Height; y += 4 {
		for x := 0; x < invaders.Width; x += 2 {
			upper, lower := m.cell(x, y), m.cell(x, y+2)
			switch {
			case upper && lower:
				b.WriteRune('█')
			case upper:
				b.WriteRune('▀')
			case lower:
				b.WriteRune('▄')
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}

	if m.halted {
		b.WriteString(helpStyle.Render("cpu halted"))
	} else {
		b.WriteString(helpStyle.Render("a coin • s start • w fire • q left • e right • ctrl+c quit"))
	}
	return b.String()
}
