package log

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/tevino/abool"
)

// Severity describes a log level.
type Severity uint32

// Message describes a log line.
type logLine struct {
	msg       string
	level     Severity
	timestamp time.Time
	file      string
	line      int
}

// Log levels.
const (
	TraceLevel    Severity = 1
	DebugLevel    Severity = 2
	InfoLevel     Severity = 3
	WarningLevel  Severity = 4
	ErrorLevel    Severity = 5
	CriticalLevel Severity = 6
)

var (
	logBuffer             chan *logLine
	forceEmptyingOfBuffer chan struct{}

	logLevelInt = uint32(InfoLevel)
	logLevel    = &logLevelInt

	logsWaiting     = make(chan struct{}, 1)
	logsWaitingFlag = abool.NewBool(false)

	shutdownSignal       = make(chan struct{})
	shutdownSignalClosed = abool.NewBool(false)
	writerDone           = make(chan struct{})

	started       = abool.NewBool(false)
	startedSignal = make(chan struct{})
)

// SetLogLevel sets a new log level.
func SetLogLevel(level Severity) {
	atomic.StoreUint32(logLevel, uint32(level))
}

// GetLogLevel returns the current log level.
func GetLogLevel() Severity {
	return Severity(atomic.LoadUint32(logLevel))
}

// ParseLevel returns the level severity of a log level name. It returns 0 for invalid level names.
func ParseLevel(level string) Severity {
	switch strings.ToLower(level) {
	case "trace":
		return TraceLevel
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warning":
		return WarningLevel
	case "error":
		return ErrorLevel
	case "critical":
		return CriticalLevel
	}
	return 0
}

// Start starts the logging system. Must be called in order to see logs.
func Start() (err error) {
	if !started.SetToIf(false, true) {
		return nil
	}

	logBuffer = make(chan *logLine, 1024)
	forceEmptyingOfBuffer = make(chan struct{}, 4)

	initialLogLevel := ParseLevel(logLevelFlag)
	if initialLogLevel == 0 {
		fmt.Printf("log warning: invalid log level \"%s\", falling back to level info\n", logLevelFlag)
		initialLogLevel = InfoLevel
	}
	SetLogLevel(initialLogLevel)

	startWriter()

	close(startedSignal)
	return err
}

// Shutdown writes remaining log lines and then stops the logging system.
func Shutdown() {
	if !started.IsSet() {
		return
	}
	if shutdownSignalClosed.SetToIf(false, true) {
		close(shutdownSignal)
	}
	// wait for the writer to finish
	<-writerDone
}
