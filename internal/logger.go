// Copyright 2015 Ka-Hing Cheung
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package internal

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strings"
	"sync"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var mu sync.Mutex
var loggers = make(map[string]*logHandle)

var logger = GetLogger("xchunker_internal")

// settings applied to loggers created after a Set* call
var (
	curLevel    = logrus.InfoLevel
	curOutput   io.Writer
	curLogID    string
	colorOutput = isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
)

var framePlaceHolder = runtime.Frame{Function: "???", File: "???", Line: 0}

type logHandle struct {
	logrus.Logger

	name     string
	logid    string
	pid      int
	colorful bool
}

func (l *logHandle) Format(e *logrus.Entry) ([]byte, error) {
	lvlStr := strings.ToUpper(e.Level.String())
	if l.colorful {
		var color int
		switch e.Level {
		case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
			color = 31 // RED
		case logrus.WarnLevel:
			color = 33 // YELLOW
		case logrus.InfoLevel:
			color = 34 // BLUE
		default: // logrus.TraceLevel, logrus.DebugLevel
			color = 35 // MAGENTA
		}
		lvlStr = fmt.Sprintf("\033[1;%dm%s\033[0m", color, lvlStr)
	}
	const timeFormat = "2006/01/02 15:04:05.000000"
	caller := e.Caller
	if caller == nil {
		caller = &framePlaceHolder
	}
	str := fmt.Sprintf("%s%v %s[%d] <%v>: %v [%s@%s:%d]",
		l.logid,
		e.Time.Format(timeFormat),
		l.name,
		l.pid,
		lvlStr,
		strings.TrimRight(e.Message, "\n"),
		MethodName(caller.Function),
		path.Base(caller.File),
		caller.Line)

	if len(e.Data) != 0 {
		str += " " + fmt.Sprint(e.Data)
	}
	if !strings.HasSuffix(str, "\n") {
		str += "\n"
	}
	return []byte(str), nil
}

// MethodName trims the package path and closure suffixes from a runtime
// function name, so "pkg/chunker.(*Splitter).Split.func1" becomes "Split".
func MethodName(fullFuncName string) string {
	firstSlash := strings.Index(fullFuncName, "/")
	if firstSlash != -1 && firstSlash < len(fullFuncName)-1 {
		fullFuncName = fullFuncName[firstSlash+1:]
	}
	lastDot := strings.LastIndex(fullFuncName, ".")
	if lastDot == -1 || lastDot == len(fullFuncName)-1 {
		return fullFuncName
	}
	method := fullFuncName[lastDot+1:]
	// func1, func2 ... are closures, gowrap1 ... are go statements
	if isGenerated(method, "func") || isGenerated(method, "gowrap") {
		if candidate := MethodName(fullFuncName[:lastDot]); candidate != "" {
			method = candidate
		}
	}
	// init.0, init.1 ...
	if len(method) == 1 && method[0] >= '0' && method[0] <= '9' {
		if candidate := MethodName(fullFuncName[:lastDot]); candidate != "" {
			method = candidate
		}
	}
	return method
}

func isGenerated(method, prefix string) bool {
	return len(method) > len(prefix) && strings.HasPrefix(method, prefix) &&
		method[len(prefix)] >= '0' && method[len(prefix)] <= '9'
}

func newLogger(name string) *logHandle {
	l := &logHandle{Logger: *logrus.New(), name: name, pid: os.Getpid()}
	l.Formatter = l
	l.Level = curLevel
	l.logid = curLogID
	l.colorful = colorOutput && curOutput == nil
	if curOutput != nil {
		l.SetOutput(curOutput)
	}
	l.SetReportCaller(true)
	return l
}

// GetLogger returns a logger mapped to `name`
func GetLogger(name string) *logHandle {
	mu.Lock()
	defer mu.Unlock()

	if logger, ok := loggers[name]; ok {
		return logger
	}
	logger := newLogger(name)
	loggers[name] = logger
	return logger
}

// SetLogLevel sets Level to all the loggers in the map
func SetLogLevel(lvl logrus.Level) {
	mu.Lock()
	defer mu.Unlock()
	curLevel = lvl
	for _, logger := range loggers {
		logger.Level = lvl
	}
}

// SetLogLevelByName accepts trace/debug/info/warn/error. Anything else
// falls back to info and is reported as an error.
func SetLogLevelByName(name string) error {
	switch strings.ToLower(name) {
	case "trace":
		SetLogLevel(logrus.TraceLevel)
	case "debug":
		SetLogLevel(logrus.DebugLevel)
	case "info", "":
		SetLogLevel(logrus.InfoLevel)
	case "warn", "warning":
		SetLogLevel(logrus.WarnLevel)
	case "error":
		SetLogLevel(logrus.ErrorLevel)
	default:
		SetLogLevel(logrus.InfoLevel)
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidArgument, name)
	}
	return nil
}

func DisableLogColor() {
	mu.Lock()
	defer mu.Unlock()
	colorOutput = false
	for _, logger := range loggers {
		logger.colorful = false
	}
}

// SetOutFile sends every logger to a daily-rotated file. A symlink at `name`
// always points to the newest file.
func SetOutFile(name string) error {
	logf, err := rotatelogs.New(
		name+".%Y%m%d",
		rotatelogs.WithLinkName(name),
		rotatelogs.WithMaxAge(7*24*time.Hour),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", name, err)
	}

	mu.Lock()
	defer mu.Unlock()
	curOutput = logf
	for _, logger := range loggers {
		logger.SetOutput(logf)
		logger.colorful = false
	}
	return nil
}

func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	curOutput = w
	for _, logger := range loggers {
		logger.SetOutput(w)
		logger.colorful = false
	}
}

// SetLogID prefixes every following log line with id.
func SetLogID(id string) {
	mu.Lock()
	defer mu.Unlock()
	curLogID = id
	for _, logger := range loggers {
		logger.logid = id
	}
}

func GetDefaultLogDir() string {
	var defaultLogDir = "/var/log"
	switch runtime.GOOS {
	case "linux":
		if os.Getuid() == 0 {
			break
		}
		fallthrough
	case "darwin", "windows":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return defaultLogDir
		}
		defaultLogDir = path.Join(homeDir, ".xchunker")
	}
	return defaultLogDir
}
