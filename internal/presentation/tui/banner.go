package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// PrintBanner writes the startup banner. Colors are skipped when the output
// is not a terminal.
func PrintBanner(w io.Writer) {
	lines := []string{
		"  _ _     _  __ _",
		" (_) |   | |/ _| |",
		"  _| | __| | |_| | _____      __",
		" | | |/ _` |  _| |/ _ \\ \\ /\\ / /",
		" | | | (_| | | | | (_) \\ V  V /",
		" |_|_|\\__,_|_| |_|\\___/ \\_/\\_/",
	}

	if f, ok := w.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		for _, l := range lines {
			fmt.Fprintln(w, l)
		}
		return
	}

	p := termenv.ColorProfile()
	colors := []string{"#38bdf8", "#38bdf8", "#22d3ee", "#2dd4bf", "#34d399", "#4ade80"}

	fmt.Fprintln(w)
	for i, l := range lines {
		fmt.Fprintln(w, termenv.String(l).Foreground(p.Color(colors[i])))
	}
	fmt.Fprintln(w)
}
