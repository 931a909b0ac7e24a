package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/zhengshuai-xiao/xchunker/cmd"
	"github.com/zhengshuai-xiao/xchunker/internal"
)

var logger = internal.GetLogger("xchunker_main")

func main() {
	internal.SetLogLevel(logrus.InfoLevel)
	err := cmd.Main(os.Args)
	if err != nil {
		logger.Fatal(err)
	}
}
