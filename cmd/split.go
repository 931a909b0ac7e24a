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

func cmdSplit() *cli.Command {
	return &cli.Command{
		Name:      "split",
		Action:    split,
		Category:  "CHUNK",
		Usage:     "Split a file into chunk files",
		ArgsUsage: "SOURCE",
		Description: `
			Cuts SOURCE into files of --chunk-size bytes named <stem>_chunk<N>.<ext>,
			N starting at 1. The last chunk holds the remainder. SOURCE needs an
			extension.

			Examples:
			$ xchunker split video.mp4
			$ xchunker split -s 100MB -c 8 -o /tmp/parts video.mp4`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "directory for the chunk files (default: SOURCE_chunks)",
			},
			&cli.StringFlag{
				Name:    "chunk-size",
				Aliases: []string{"s"},
				Value:   "24MB",
				Usage:   "size of each chunk, e.g. 512KB, 24MB, 1.5GB",
				EnvVars: []string{"XCHUNKER_CHUNK_SIZE"},
			},
			concurrencyFlag(),
		},
	}
}

func split(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("%w: split takes exactly one SOURCE, got %d arguments", internal.ErrInvalidArgument, c.Args().Len())
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

	source := c.Args().First()
	outputDir := conf.OutputDir
	if outputDir == "" {
		outputDir = source + "_chunks"
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	sink := progress.ForTerminal(os.Stderr, conf.Quiet, "split")
	splitter := chunker.NewSplitter(int64(conf.ChunkSize), conf.Concurrency, sink)
	result, err := splitter.Split(c.Context, source, outputDir)
	sink.Finish()
	if err != nil {
		return err
	}

	var size int64
	if info, err := os.Stat(source); err == nil {
		size = info.Size()
	}
	printSummary(c.App.Writer, "Split complete",
		summaryLine{"Chunks", strconv.Itoa(result.Count)},
		summaryLine{"Size", internal.FormatBytes(uint64(size))},
		summaryLine{"Time taken", fmt.Sprintf("%.3fs", result.Seconds())},
		summaryLine{"Throughput", throughput(size, result.Elapsed)},
		summaryLine{"Output", outputDir},
	)
	return nil
}
