package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const bannerTTL = 3 * time.Second

// bannerMsg asks the app to show a transient banner.
type bannerMsg struct {
	text  string
	isErr bool
}

// bannerClearMsg clears the banner it was scheduled for. A newer banner
// (higher seq) survives an older tick.
type bannerClearMsg struct {
	seq int
}

type banner struct {
	text  string
	isErr bool
	seq   int
}

func flash(text string) tea.Cmd {
	return func() tea.Msg { return bannerMsg{text: text} }
}

func flashErr(text string) tea.Cmd {
	return func() tea.Msg { return bannerMsg{text: text, isErr: true} }
}

func bannerClearCmd(seq int) tea.Cmd {
	return tea.Tick(bannerTTL, func(time.Time) tea.Msg {
		return bannerClearMsg{seq: seq}
	})
}

// show replaces the banner and returns the command that will dismiss it.
func (b *banner) show(msg bannerMsg) tea.Cmd {
	b.seq++
	b.text, b.isErr = msg.text, msg.isErr
	return bannerClearCmd(b.seq)
}

func (b *banner) clear(msg bannerClearMsg) {
	if msg.seq == b.seq {
		b.text, b.isErr = "", false
	}
}

func (b banner) View() string {
	if b.text == "" {
		return ""
	}
	if b.isErr {
		return bannerErrorStyle.Render(b.text)
	}
	return bannerInfoStyle.Render(b.text)
}
