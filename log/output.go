package log

import (
	"fmt"
	"time"
)

func writeLine(line *logLine) {
	fmt.Println(formatLine(line, true))
}

func startWriter() {
	fmt.Println(fmt.Sprintf("%s%s %s BOF%s", InfoLevel.color(), time.Now().Format(timeFormat), rightArrow, endColor()))
	go writer()
}

func writer() {
	defer close(writerDone)
	var line *logLine

	for {
		// wait until logs need to be processed
		select {
		case <-logsWaiting:
			logsWaitingFlag.UnSet()
		case <-forceEmptyingOfBuffer:
		case <-shutdownSignal:
			// drain and exit
			for {
				select {
				case line = <-logBuffer:
					writeLine(line)
				case <-time.After(10 * time.Millisecond):
					fmt.Println(fmt.Sprintf("%s%s %s EOF%s", WarningLevel.color(), time.Now().Format(timeFormat), rightArrow, endColor()))
					return
				}
			}
		}

		// write all waiting logs
	writeLoop:
		for {
			select {
			case line = <-logBuffer:
				writeLine(line)
			default:
				break writeLoop
			}
		}
	}
}
