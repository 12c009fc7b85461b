package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

func (c *Controller) developerView() fyne.CanvasObject {
	options := container.NewVBox(
		heading("Developer Options", 16),
		widget.NewLabelWithStyle(c.lib.Root(), fyne.TextAlignCenter, fyne.TextStyle{Monospace: true}),
		widget.NewButton("Add New Directory", func() { c.pickFolder("", c.addDirectory) }),
		widget.NewButton("Remove Directory", func() { c.pickFolder(c.lib.Root(), c.removeDirectory) }),
		widget.NewButton("Edit Existing Directory", func() { c.pickFolder(c.lib.Root(), c.editDirectory) }),
	)
	if c.catalog != nil {
		options.Add(widget.NewButton("Download Game", c.downloadGame))
	}
	options.Add(widget.NewButton("Back", func() { c.Show(ScreenMainMenu) }))

	return container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(options),
		layout.NewSpacer(),
	)
}

func (c *Controller) addDirectory(source string) {
	name, err := c.lib.Add(source)
	if err != nil {
		c.fail("add", err)
		return
	}
	c.notify.Info("Success", fmt.Sprintf("Added %s to root directory.", name))
}

func (c *Controller) removeDirectory(folder string) {
	name, err := c.lib.Remove(folder)
	if err != nil {
		c.fail("remove", err)
		return
	}
	c.notify.Info("Success", fmt.Sprintf("Removed %s from root directory.", name))
}

// editDirectory only records the selection; no edit actions exist yet.
func (c *Controller) editDirectory(folder string) {
	c.log.Info().Str("path", folder).Msg("directory selected for editing")
}
