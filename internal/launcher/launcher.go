package launcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/rs/zerolog"

	"game-portal/internal/library"
)

var ErrGameNotFound = errors.New("game file not found")

// Starter starts cmd and returns without waiting for it to exit.
type Starter func(cmd *exec.Cmd) error

type Option func(*Launcher)

// WithStarter replaces the process starter.
func WithStarter(s Starter) Option {
	return func(l *Launcher) { l.start = s }
}

// WithExecutable overrides the executable name looked up in game folders.
func WithExecutable(name string) Option {
	return func(l *Launcher) { l.executable = name }
}

// Launcher starts the fixed launcher executable inside a game folder.
type Launcher struct {
	executable string
	start      Starter
	log        zerolog.Logger
}

func New(log zerolog.Logger, opts ...Option) *Launcher {
	l := &Launcher{
		executable: library.LauncherFile,
		start:      StartDetached,
		log:        log.With().Str("component", "launcher").Logger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Launch starts the game in dir and returns as soon as the process is
// running. The exit status is never collected by the caller.
func (l *Launcher) Launch(dir string) error {
	path := filepath.Join(dir, l.executable)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		l.log.Warn().Str("path", path).Msg("launcher executable missing")
		return fmt.Errorf("%s: %w", filepath.Base(dir), ErrGameNotFound)
	}

	cmd := exec.Command(path)
	cmd.Dir = dir

	if err := l.start(cmd); err != nil {
		return fmt.Errorf("start %s: %w", path, err)
	}

	l.log.Info().Str("game", filepath.Base(dir)).Str("path", path).Msg("game launched")
	return nil
}

// StartDetached starts cmd and reaps it in the background.
func StartDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait() //nolint:errcheck
	return nil
}
