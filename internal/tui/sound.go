package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// Alarm sounds selectable in settings. They all map to the terminal bell;
// the name is kept so a richer frontend can pick a real sample.
var alarmSounds = []string{"beep", "digital", "bell", "retro", "chime", "success"}

// playAlarm rings the terminal bell. Failures never reach the user; the
// timer keeps going regardless of whether the bell sounded.
func playAlarm(logger *log.Logger, sound string) tea.Cmd {
	return func() tea.Msg {
		if _, err := fmt.Fprint(os.Stdout, "\a"); err != nil {
			logger.Warn("alarm playback failed", "sound", sound, "err", err)
		}
		return nil
	}
}
