package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

type summaryLine struct {
	label string
	value string
}

func printSummary(w io.Writer, title string, lines ...summaryLine) {
	fmt.Fprintf(w, "\n%s\n", color.New(color.FgGreen, color.Bold).Sprint(title))
	for _, l := range lines {
		fmt.Fprintf(w, "  %-12s %s\n", l.label+":", l.value)
	}
	fmt.Fprintln(w)
}

func throughput(size int64, elapsed time.Duration) string {
	if elapsed <= 0 {
		return "n/a"
	}
	return humanize.IBytes(uint64(float64(size)/elapsed.Seconds())) + "/s"
}
