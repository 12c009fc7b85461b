package main

import (
	"errors"
	"io/fs"
	"os"

	"fyne.io/fyne/v2/app"

	"game-portal/internal/catalog"
	"game-portal/internal/config"
	"game-portal/internal/launcher"
	"game-portal/internal/library"
	"game-portal/internal/logging"
	"game-portal/internal/mailer"
	"game-portal/internal/ui"
)

const AppID = "com.gameportal.game-portal"

func main() {
	cfgPath := config.Path()
	cfg, cfgErr := config.Load(cfgPath)

	log := logging.NewConsole(cfg.LogLevel)
	if cfgErr != nil {
		log.Warn().Err(cfgErr).Str("path", cfgPath).Msg("using default configuration")
	} else if _, err := os.Stat(cfgPath); errors.Is(err, fs.ErrNotExist) {
		if err := config.Save(cfgPath, cfg); err != nil {
			log.Warn().Err(err).Str("path", cfgPath).Msg("could not write default configuration")
		}
	}

	lib := library.New(cfg.RootDir, log)
	if err := lib.EnsureRoot(); err != nil {
		log.Fatal().Err(err).Msg("root directory unavailable")
	}

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewPortalTheme())
	settings := config.NewSettings(myApp)

	myWin := myApp.NewWindow(ui.AppTitle)
	myWin.Resize(settings.WindowSize())
	myWin.SetMaster()
	myWin.SetOnClosed(func() {
		settings.SetWindowSize(myWin.Canvas().Size())
	})

	gameLauncher := launcher.New(log)
	contact := mailer.New(mailerConfig(cfg.Mail), config.NewSecrets(), log)
	games := catalog.New(cfg.Catalog.LocalPath(cfgPath), cfg.Catalog.Remote, log,
		catalog.WithTimeout(cfg.Catalog.Timeout),
	)

	controller := ui.NewController(myWin, lib, gameLauncher, contact, log,
		ui.WithCoverSize(cfg.CoverSize),
		ui.WithCatalog(games),
	)
	controller.Show(ui.ScreenMainMenu)

	log.Info().Str("root", lib.Root()).Str("config", cfgPath).Msg("game portal started")
	myWin.ShowAndRun()
}

func mailerConfig(m config.Mail) mailer.Config {
	return mailer.Config{
		Host:     m.Host,
		Port:     m.Port,
		From:     m.From,
		To:       m.To,
		Subject:  m.Subject,
		Username: m.Username,
		Timeout:  m.Timeout,
	}
}
