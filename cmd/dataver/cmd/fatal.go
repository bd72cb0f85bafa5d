package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
)

var (
	// globals used to patch over calls to os.Exit() during test

	logFatalln = log.Fatalln
	logFatalf  = log.Fatalf
	osExit     = os.Exit

	// infoLogger wraps informative messages to os.Stdout without cluttering expected output in tests.
	// To be used instead of fmt.Printf(os.Stdout, ...)
	infoLogger = log.New(os.Stdout, "", 0)

	warnColor    = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
)

func wrapFatalln(msg string, err error) {
	if err == nil {
		logFatalln(msg)
	} else {
		logFatalf("%v", fmt.Errorf(msg+": %w", err))
	}
}

func wrapFatalWithCodef(code int, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	osExit(code)
}

// warnf reports a recoverable failure: the run carries on
func warnf(format string, args ...interface{}) {
	infoLogger.Println(warnColor.Sprintf("warning: "+format, args...))
}

func successf(format string, args ...interface{}) {
	infoLogger.Println(successColor.Sprintf(format, args...))
}
