package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"
	"github.com/zhengshuai-xiao/xchunker/internal"
	"github.com/zhengshuai-xiao/xchunker/pkg/chunker"
	"github.com/zhengshuai-xiao/xchunker/pkg/progress"
)

func cmdMerge() *cli.Command {
	return &cli.Command{
		Name:      "merge",
		Action:    merge,
		Category:  "CHUNK",
		Usage:     "Merge the chunk files of a directory into one file",
		ArgsUsage: "DIR OUTPUT",
		Description: `
			Concatenates every file of DIR into OUTPUT, ordered by the number formed
			by all digits of each file name. DIR should hold nothing but the chunks
			of one split; use "xchunker list DIR" to check the order first.

			Examples:
			$ xchunker merge video.mp4_chunks video.mp4
			$ xchunker merge -b 16MB -c 8 --cleanup /tmp/parts video.mp4`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "buffer-size",
				Aliases: []string{"b"},
				Value:   "8MB",
				Usage:   "read and write buffer size",
				EnvVars: []string{"XCHUNKER_BUFFER_SIZE"},
			},
			&cli.BoolFlag{
				Name:    "cleanup",
				Aliases: []string{"C"},
				Usage:   "remove the chunks and DIR after a successful merge",
			},
			concurrencyFlag(),
		},
	}
}

func merge(c *cli.Context) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("%w: merge takes DIR and OUTPUT, got %d arguments", internal.ErrInvalidArgument, c.Args().Len())
	}
	conf, err := loadConfig(c)
	if err != nil {
		return err
	}
	release, err := handleBackgroundMode(c)
	if err != nil {
		return err
	}
	defer release()

	dir, output := c.Args().Get(0), c.Args().Get(1)
	sink := progress.ForTerminal(os.Stderr, conf.Quiet, "merge")
	merger := chunker.NewMerger(int(conf.BufferSize), conf.Concurrency, sink)
	chunks, elapsed, err := merger.MergeDir(c.Context, dir, output)
	sink.Finish()
	if err != nil {
		return err
	}

	var size int64
	if info, err := os.Stat(output); err == nil {
		size = info.Size()
	}
	printSummary(c.App.Writer, "Merge complete",
		summaryLine{"Chunks", strconv.Itoa(len(chunks))},
		summaryLine{"Size", internal.FormatBytes(uint64(size))},
		summaryLine{"Time taken", fmt.Sprintf("%.3fs", elapsed.Seconds())},
		summaryLine{"Throughput", throughput(size, elapsed)},
		summaryLine{"Output", output},
	)

	if conf.Cleanup {
		chunker.Cleanup(chunks, dir)
		if !internal.Exists(dir) {
			fmt.Fprintf(c.App.Writer, "Cleaned up %s\n", dir)
		}
	}
	return nil
}
