package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/tomz197/colorguess/internal/config"
	"github.com/tomz197/colorguess/internal/logger"
	"github.com/tomz197/colorguess/internal/loop"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// The screen belongs to the game; log to a file only when asked.
	var logOut io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	lg, err := logger.New(logOut, cfg.LogLevel, "game")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}

	reader := bufio.NewReader(os.Stdin)
	runErr := loop.Run(reader, os.Stdout, cfg, lg)
	_ = term.Restore(fd, oldState)

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", runErr)
		os.Exit(1)
	}
}
