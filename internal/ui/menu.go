package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const AppTitle = "Game Portal"

const menuButtonWidth float32 = 220

func heading(text string, size float32) *canvas.Text {
	t := canvas.NewText(text, colorForeground)
	t.TextSize = size
	t.TextStyle = fyne.TextStyle{Bold: true}
	t.Alignment = fyne.TextAlignCenter
	return t
}

func (c *Controller) mainMenu() fyne.CanvasObject {
	menu := container.NewVBox(
		heading(AppTitle, 20),
		widget.NewButton("Player", func() { c.Show(ScreenPlayer) }),
		widget.NewButton("Developer", func() { c.Show(ScreenDeveloper) }),
		widget.NewButton("Quit", c.quit),
	)

	return container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(container.NewGridWrap(fyne.NewSize(menuButtonWidth, menu.MinSize().Height), menu)),
		layout.NewSpacer(),
	)
}
