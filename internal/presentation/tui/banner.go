package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{"                        _            ", "#818cf8"},
	{"  _ __ ___   ___   __| |_   ___  __", "#a78bfa"},
	{" | '_ ` _ \\ / _ \\ / _` | | | \\ \\/ /", "#c084fc"},
	{" | | | | | | (_) | (_| | |_| |>  < ", "#e879f9"},
	{" |_| |_| |_|\\___/ \\__,_|\\__,_/_/\\_\\", "#f472b6"},
}

// PrintBanner writes the modux banner and version to w.
// Colors degrade to the profile detected for w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()

	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, out.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, out.String(" v"+version).Faint())
	fmt.Fprintln(w)
}
