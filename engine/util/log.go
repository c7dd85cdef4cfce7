package util

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

var GLOBAL_LOG_LEVEL = LogLevelInfo
var GLOBAL_LOG_CATEGORIES = LogFont | LogAtlas | LogMesh | LogOpenGL | LogSystem

var logOutput io.Writer = os.Stderr
var logColored = term.IsTerminal(int(os.Stderr.Fd()))

type LogLevel int

const (
	LogLevelError LogLevel = 1 << iota
	LogLevelWarning
	LogLevelInfo
	LogLevelDebug
)

func (l LogLevel) tag() string {
	switch l {
	case LogLevelError:
		return "ERROR"
	case LogLevelWarning:
		return "WARN"
	case LogLevelInfo:
		return "INFO"
	case LogLevelDebug:
		return "DEBUG"
	}
	return "?"
}

func (l LogLevel) color() string {
	switch l {
	case LogLevelError:
		return "\033[31m"
	case LogLevelWarning:
		return "\033[33m"
	case LogLevelDebug:
		return "\033[90m"
	}
	return "\033[36m"
}

type LogCategory int

const (
	LogFont LogCategory = 1 << iota
	LogAtlas
	LogMesh
	LogOpenGL
	LogSystem
	LogInput
)

// SetLogOutput redirects the log, e.g. into a buffer in tests. Colors are off for anything
// that is not a terminal.
func SetLogOutput(w io.Writer) {
	logOutput = w
	if f, ok := w.(*os.File); ok {
		logColored = term.IsTerminal(int(f.Fd()))
	} else {
		logColored = false
	}
}

func log(cat LogCategory, lvl LogLevel, txt string) {
	if lvl > GLOBAL_LOG_LEVEL {
		return
	}
	if GLOBAL_LOG_CATEGORIES&cat == 0 {
		return
	}
	if logColored {
		fmt.Fprintf(logOutput, "%s%-5s\033[0m %s\n", lvl.color(), lvl.tag(), txt)
		return
	}
	fmt.Fprintf(logOutput, "%-5s %s\n", lvl.tag(), txt)
}

func LogFontInfo(txt string) {
	log(LogFont, LogLevelInfo, txt)
}

func LogFontError(txt string) {
	log(LogFont, LogLevelError, txt)
}

func LogAtlasInfo(txt string) {
	log(LogAtlas, LogLevelInfo, txt)
}

func LogAtlasDebug(txt string) {
	log(LogAtlas, LogLevelDebug, txt)
}

func LogMeshInfo(txt string) {
	log(LogMesh, LogLevelInfo, txt)
}

func LogMeshWarning(txt string) {
	log(LogMesh, LogLevelWarning, txt)
}

func LogSystemInfo(txt string) {
	log(LogSystem, LogLevelInfo, txt)
}

func LogSystemError(txt string) {
	log(LogSystem, LogLevelError, txt)
}

func LogInputDebug(txt string) {
	log(LogInput, LogLevelDebug, txt)
}

func LogGlInfo(txt string) {
	log(LogOpenGL, LogLevelInfo, txt)
}

func LogGlError(txt string) {
	log(LogOpenGL, LogLevelError, txt)
}

func LogGlWarning(txt string) {
	log(LogOpenGL, LogLevelWarning, txt)
}
