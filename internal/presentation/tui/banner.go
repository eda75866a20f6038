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
	{" _   _      _             _                  ", "#34d399"},
	{"| |_(_) ___| | _____ _ __| |_ __ _ _ __   ___ ", "#10b981"},
	{"| __| |/ __| |/ / _ \\ '__| __/ _` | '_ \\ / _ \\", "#059669"},
	{"| |_| | (__|   <  __/ |  | || (_| | |_) |  __/", "#0d9488"},
	{" \\__|_|\\___|_|\\_\\___|_|   \\__\\__,_| .__/ \\___|", "#0891b2"},
	{"                                  |_|         ", "#0284c7"},
}

// PrintBanner writes the tickertape banner to w, coloured for the terminal's profile.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()

	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
