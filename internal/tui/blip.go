package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const blipTickInterval = 500 * time.Millisecond

// blipTickMsg advances the mascot animation.
type blipTickMsg time.Time

func blipTick() tea.Cmd {
	return tea.Tick(blipTickInterval, func(t time.Time) tea.Msg {
		return blipTickMsg(t)
	})
}

// blipFrames holds the three-step idle animation per character skin.
var blipFrames = map[string][3]string{
	"axolotl": {
		"(• ◡•)", "(• ○•)", "(• ◡•)",
	},
	"cat": {
		"(=^‿^=)", "(=-‿-=)", "(=^‿^=)",
	},
	"robot": {
		"[o_o]", "[-_-]", "[o_o]",
	},
}

// blipFrame returns the current sprite for a character. Unknown characters
// fall back to the axolotl.
func blipFrame(character string, frame int) string {
	frames, ok := blipFrames[character]
	if !ok {
		frames = blipFrames["axolotl"]
	}
	return frames[frame%len(frames)]
}
