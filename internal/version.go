package internal

import "fmt"

var (
	version   = "0.3.0"
	revision  = "$Format:%h$"
	buildDate = "$Format:%as$"
)

// Version is overridden at link time:
//
//	go build -ldflags "-X github.com/zhengshuai-xiao/xchunker/internal.revision=$(git rev-parse --short HEAD)"
func Version() string {
	return fmt.Sprintf("%s+%s.%s", version, buildDate, revision)
}
