package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/muesli/termenv"

	"github.com/tomz197/colorguess/internal/config"
	"github.com/tomz197/colorguess/internal/draw"
	"github.com/tomz197/colorguess/internal/logger"
	"github.com/tomz197/colorguess/internal/loop/client"
	"github.com/tomz197/colorguess/internal/loop/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	lg, err := logger.New(os.Stderr, cfg.LogLevel, "ssh")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	workingDir, workErr := os.Getwd()
	if workErr != nil {
		lg.Warn("failed to get working directory", "err", workErr)
	}
	lg.Info("ssh config",
		"host", cfg.SSHHost,
		"port", cfg.SSHPort,
		"hostKeyPath", cfg.SSHHostKey,
		"workingDir", workingDir,
	)

	// Session registry shared by all SSH clients. Game state is per session.
	gameServer := server.NewServer(lg)

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.SSHHost, cfg.SSHPort)),
		wish.WithMiddleware(
			gameMiddleware(gameServer, cfg, lg),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(lg),
		),
		// Set TCP_NODELAY so slider moves echo promptly
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if cfg.SSHHostKey != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.SSHHostKey))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		lg.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	lg.Info("starting ssh server", "addr", s.Addr)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			lg.Fatal("server error", "err", err)
		}
	}()

	<-done
	lg.Info("shutting down server")

	// Notify players and wait for them to disconnect
	if remaining := gameServer.Shutdown(15 * time.Second); remaining > 0 {
		lg.Warn("players still connected at shutdown", "count", remaining)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		lg.Fatal("shutdown error", "err", err)
	}
}

// gameMiddleware handles SSH sessions and runs one game client per session.
func gameMiddleware(gs *server.Server, cfg *config.Config, lg *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			lg.Info("new game session",
				"user", sess.User(),
				"term", pty.Term,
				"size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height),
			)

			// Create a terminal size tracker that updates on window changes
			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			env := sessionEnv{environ: append(sess.Environ(), "TERM="+pty.Term)}
			c := client.NewClient(gs, bufio.NewReader(sess), sess, client.ClientOptions{
				TermSizeFunc: sizeTracker.getSize,
				Username:     sess.User(),
				TickInterval: cfg.TickInterval,
				ColorProfile: cfg.ColorProfile,
				OutputOpts: []termenv.OutputOption{
					termenv.WithEnvironment(env),
					termenv.WithUnsafe(),
					termenv.WithTTY(true),
				},
				Logger: lg,
			})
			if err := c.Run(); err != nil {
				lg.Error("game error", "user", sess.User(), "err", err)
			}

			lg.Info("session ended", "user", sess.User())
			next(sess)
		}
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize

// sessionEnv exposes the client's environment to termenv so color support
// is detected from the remote terminal rather than the server's.
type sessionEnv struct {
	environ []string
}

func (e sessionEnv) Environ() []string {
	return e.environ
}

func (e sessionEnv) Getenv(key string) string {
	prefix := key + "="
	for i := len(e.environ) - 1; i >= 0; i-- {
		if v, ok := strings.CutPrefix(e.environ[i], prefix); ok {
			return v
		}
	}
	return ""
}
