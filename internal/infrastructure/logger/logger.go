package logger

import (
	"io"
	"log"
	"os"
	"strings"
)

var (
	Info  *log.Logger
	Error *log.Logger
	Debug *log.Logger
	Warn  *log.Logger
)

const logFlags = log.Ldate | log.Ltime | log.LUTC | log.Lshortfile

func init() {
	Info = log.New(os.Stdout, "INFO: ", logFlags)
	Error = log.New(os.Stdout, "ERROR: ", logFlags)
	Warn = log.New(os.Stdout, "WARN: ", logFlags)
	Debug = log.New(io.Discard, "DEBUG: ", logFlags)
}

// SetLevel enables debug output for "debug" and silences info output for
// "warn" and "error". Warnings and errors are always written.
func SetLevel(level string) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		Debug.SetOutput(os.Stdout)
		Info.SetOutput(os.Stdout)
	case "warn", "error":
		Debug.SetOutput(io.Discard)
		Info.SetOutput(io.Discard)
	default:
		Debug.SetOutput(io.Discard)
		Info.SetOutput(os.Stdout)
	}
}
