package logger

import (
	"fmt"
	"log"
	"os"
)

var (
	InfoLogger  *log.Logger
	WarnLogger  *log.Logger
	ErrorLogger *log.Logger
)

// Init configures the package loggers. Safe to call more than once.
func Init() {
	InfoLogger = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarnLogger = log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
}

func Info(format string, v ...interface{}) {
	if InfoLogger == nil {
		Init()
	}
	InfoLogger.Output(2, fmt.Sprintf(format, v...))
}

func Warn(format string, v ...interface{}) {
	if WarnLogger == nil {
		Init()
	}
	WarnLogger.Output(2, fmt.Sprintf(format, v...))
}

func Error(format string, v ...interface{}) {
	if ErrorLogger == nil {
		Init()
	}
	ErrorLogger.Output(2, fmt.Sprintf(format, v...))
}
