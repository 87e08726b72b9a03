// Package loop wires a single local game session.
package loop

import (
	"bufio"
	"io"

	"github.com/charmbracelet/log"

	"github.com/tomz197/colorguess/internal/config"
	"github.com/tomz197/colorguess/internal/loop/client"
	"github.com/tomz197/colorguess/internal/loop/server"
)

// Run plays one local session on r and w until the player quits.
func Run(r *bufio.Reader, w io.Writer, cfg *config.Config, logger *log.Logger) error {
	srv := server.NewServer(logger)
	c := client.NewClient(srv, r, w, client.ClientOptions{
		Username:     "local",
		TickInterval: cfg.TickInterval,
		ColorProfile: cfg.ColorProfile,
		Logger:       logger,
	})
	return c.Run()
}
