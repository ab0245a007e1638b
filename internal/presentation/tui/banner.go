package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the start-up banner followed by the app name and version.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	// Same gradient, one colour per line (Indigo to Rose)
	lines := []struct {
		text, color string
	}{
		{"  ___           _     __  __         _     _    ", "#818cf8"},
		{" | _ \\_ _ ___ _| |__ |  \\/  |___  __| |___| |___", "#a78bfa"},
		{" |  _/ '_/ _ \\ '_ \\ \\| |\\/| / _ \\/ _` / -_) (_-<", "#c084fc"},
		{" |_| |_| \\___/_.__/ /|_|  |_\\___/\\__,_\\___|_/__/", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String(fmt.Sprintf(" probability models %s", version)).Faint())
	fmt.Fprintln(w)
}
