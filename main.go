package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/yumyai/skdist/logger"
	"go.uber.org/zap/zapcore"
)

const VERSION = "0.1.0"

func main() {

	// Establish logger, the level is raised or lowered once flags are resolved
	if err := logger.InitLogger(zapcore.InfoLevel); err != nil {
		panic(err)
	}

	// Try load env
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env found, using local environment")
	}

	a := &app{engine: logEngine{}}

	if err := newRootCmd(a).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		logger.Sync()
		os.Exit(1)
	}

	logger.Sync() // Make sure that the buffered is flushed.
}
