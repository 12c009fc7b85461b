package ui

import (
	"context"
	"time"

	"fyne.io/fyne/v2"
	"github.com/rs/zerolog"

	"game-portal/internal/catalog"
	"game-portal/internal/library"
)

// Screen identifies one of the mutually exclusive views of the window.
type Screen int

const (
	ScreenMainMenu Screen = iota
	ScreenPlayer
	ScreenDeveloper
)

func (s Screen) String() string {
	switch s {
	case ScreenMainMenu:
		return "main-menu"
	case ScreenPlayer:
		return "player"
	case ScreenDeveloper:
		return "developer"
	default:
		return "unknown"
	}
}

// GameLauncher starts the game stored in a folder.
type GameLauncher interface {
	Launch(dir string) error
}

// ContactSender delivers a contact message.
type ContactSender interface {
	Send(ctx context.Context, body string) error
	Timeout() time.Duration
}

// GameCatalog lists downloadable games and installs them into a root
// directory.
type GameCatalog interface {
	Games(ctx context.Context) ([]catalog.Game, error)
	Install(ctx context.Context, g catalog.Game, root string) (string, error)
	Timeout() time.Duration
}

type Option func(*Controller)

func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notify = n }
}

func WithFolderPicker(p FolderPicker) Option {
	return func(c *Controller) { c.pickFolder = p }
}

// WithCatalog enables the download action of the developer screen.
func WithCatalog(cat GameCatalog) Option {
	return func(c *Controller) { c.catalog = cat }
}

func WithGamePicker(p GamePicker) Option {
	return func(c *Controller) { c.pickGame = p }
}

func WithCoverSize(size uint) Option {
	return func(c *Controller) {
		if size > 0 {
			c.coverSize = size
		}
	}
}

// WithQuit replaces the action bound to the Quit button.
func WithQuit(quit func()) Option {
	return func(c *Controller) { c.quit = quit }
}

// Controller owns the window content and swaps it on every transition.
// It keeps no history: Back buttons name their target screen.
type Controller struct {
	win      fyne.Window
	lib      *library.Library
	launcher GameLauncher
	mailer   ContactSender
	catalog  GameCatalog
	log      zerolog.Logger

	notify     Notifier
	pickFolder FolderPicker
	pickGame   GamePicker
	coverSize  uint
	quit       func()

	screen  Screen
	screens map[Screen]func() fyne.CanvasObject
}

func NewController(win fyne.Window, lib *library.Library, l GameLauncher, m ContactSender, log zerolog.Logger, opts ...Option) *Controller {
	c := &Controller{
		win:        win,
		lib:        lib,
		launcher:   l,
		mailer:     m,
		log:        log.With().Str("component", "ui").Logger(),
		notify:     dialogNotifier{win: win},
		pickFolder: dialogFolderPicker(win),
		pickGame:   dialogGamePicker(win),
		coverSize:  library.DefaultCoverSize,
		quit:       win.Close,
	}
	c.screens = map[Screen]func() fyne.CanvasObject{
		ScreenMainMenu:  c.mainMenu,
		ScreenPlayer:    c.playerView,
		ScreenDeveloper: c.developerView,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Show renders screen and replaces the window content with it.
func (c *Controller) Show(screen Screen) {
	render, ok := c.screens[screen]
	if !ok {
		c.log.Error().Int("screen", int(screen)).Msg("unknown screen")
		return
	}
	c.screen = screen
	c.win.SetContent(render())
	c.log.Debug().Stringer("screen", screen).Msg("screen shown")
}

// Screen returns the screen currently shown.
func (c *Controller) Screen() Screen {
	return c.screen
}

// fail logs err and shows it to the user.
func (c *Controller) fail(action string, err error) {
	c.log.Warn().Err(err).Str("action", action).Msg("action failed")
	c.notify.Error(userFacing(err))
}
