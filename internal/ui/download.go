package ui

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"game-portal/internal/catalog"
)

// GamePicker asks the user to choose one of games. onPicked is not called
// when the user cancels.
type GamePicker func(games []catalog.Game, onPicked func(catalog.Game))

func dialogGamePicker(win fyne.Window) GamePicker {
	return func(games []catalog.Game, onPicked func(catalog.Game)) {
		titles := make([]string, 0, len(games))
		byTitle := make(map[string]catalog.Game, len(games))
		for _, g := range games {
			titles = append(titles, g.Title)
			byTitle[g.Title] = g
		}

		var selected string
		sel := widget.NewSelect(titles, func(s string) { selected = s })
		sel.PlaceHolder = "Choose a game"

		dialog.ShowCustomConfirm("Download Game", "Download", "Cancel", container.NewVBox(sel), func(ok bool) {
			if g, found := byTitle[selected]; ok && found {
				onPicked(g)
			}
		}, win)
	}
}

// downloadGame loads the catalog and lets the user pick a game to install.
func (c *Controller) downloadGame() {
	ctx, cancel := context.WithTimeout(context.Background(), c.catalog.Timeout())
	defer cancel()

	games, err := c.catalog.Games(ctx)
	if err != nil {
		c.fail("catalog", err)
		return
	}
	if len(games) == 0 {
		c.notify.Info("Download Game", "No games available.")
		return
	}
	c.pickGame(games, c.installGame)
}

func (c *Controller) installGame(g catalog.Game) {
	ctx, cancel := context.WithTimeout(context.Background(), c.catalog.Timeout())
	defer cancel()

	name, err := c.catalog.Install(ctx, g, c.lib.Root())
	if err != nil {
		c.fail("download", err)
		return
	}
	c.notify.Info("Success", fmt.Sprintf("Downloaded %s to root directory.", name))
}
