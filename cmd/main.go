package main

import (
	"os"

	"github.com/google/logger"
)

func main() {
	defer logger.Init("wheeladmin", true, false, os.Stderr).Close()

	if err := newApp().Run(os.Args); err != nil {
		logger.Fatalf("wheeladmin: %v", err)
	}
}
