package main

import (
	"os"

	"github.com/ieee0824/transcript-text/internal/logger"
)

func main() {
	err := newRootCmd().Execute()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
