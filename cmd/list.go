package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"github.com/zhengshuai-xiao/xchunker/internal"
	"github.com/zhengshuai-xiao/xchunker/pkg/chunker"
)

func cmdList() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Action:    list,
		Category:  "CHUNK",
		Usage:     "Show the order in which merge would read DIR",
		ArgsUsage: "DIR",
	}
}

func list(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("%w: list takes exactly one DIR, got %d arguments", internal.ErrInvalidArgument, c.Args().Len())
	}
	dir := c.Args().First()
	entries, err := chunker.DiscoverEntries(dir)
	if err != nil {
		return err
	}

	seen := internal.NewSet[uint64]()
	dups := internal.NewSet[uint64]()
	for _, e := range entries {
		if !seen.Add(e.SortKey) {
			dups.Add(e.SortKey)
		}
	}

	warn := color.New(color.FgYellow).SprintFunc()
	w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tKEY\tSIZE\tNAME\t")
	var total uint64
	for i, e := range entries {
		size := "-"
		var note string
		if info, err := os.Stat(e.Path); err == nil && !e.IsDir {
			size = humanize.IBytes(uint64(info.Size()))
			total += uint64(info.Size())
		}
		switch {
		case e.IsDir:
			note = warn("directory, merge will fail")
		case dups.Contains(e.SortKey):
			note = warn("same key as another entry")
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n", i+1, e.SortKey, size, filepath.Base(e.Path), note)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%d entries, %s\n", len(entries), internal.FormatBytes(total))
	return nil
}
