package logger

import (
	"log"
	"os"
)

// New returns a stderr logger so findings on stdout stay machine-readable.
func New() *log.Logger {
	return log.New(os.Stderr, "", log.LstdFlags)
}
