package ui

import (
	"math/rand/v2"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"game-portal/internal/library"
)

func (c *Controller) playerView() fyne.CanvasObject {
	entries, err := c.lib.List()
	if err != nil {
		c.fail("list", err)
	}

	list := container.NewVBox()
	for _, e := range entries {
		list.Add(c.gameRow(e))
	}
	if len(entries) == 0 {
		list.Add(widget.NewLabelWithStyle("No games installed.", fyne.TextAlignCenter, fyne.TextStyle{Italic: true}))
	}

	header := container.NewVBox(
		heading(AppTitle, 16),
		container.NewHBox(
			widget.NewButton("Back", func() { c.Show(ScreenMainMenu) }),
			layout.NewSpacer(),
			widget.NewButton("Contact Developer", c.showContactDialog),
		),
	)

	return container.NewBorder(header, nil, nil, nil, container.NewVScroll(list))
}

func (c *Controller) gameRow(e library.Entry) fyne.CanvasObject {
	bg := canvas.NewRectangle(rowColors[rand.IntN(len(rowColors))])

	name := canvas.NewText(e.Name, colorForeground)
	name.TextSize = 16

	actions := container.NewHBox()
	if e.HasGuide() {
		actions.Add(widget.NewButton("Guide", func() { c.showGuide(e) }))
	}
	actions.Add(widget.NewButton("Play", func() { c.launch(e) }))

	var left fyne.CanvasObject
	if cover := c.coverImage(e); cover != nil {
		left = newTappableImage(cover, func() { c.launch(e) }, func(pe *fyne.PointEvent) {
			c.showRowMenu(e, pe)
		})
	}

	row := container.NewBorder(nil, nil, left, actions, container.NewCenter(name))
	return container.NewStack(bg, container.NewPadded(row))
}

func (c *Controller) coverImage(e library.Entry) *canvas.Image {
	if !e.HasCover() {
		return nil
	}
	img, err := library.LoadCover(e.CoverPath, c.coverSize)
	if err != nil {
		c.log.Warn().Err(err).Str("game", e.Name).Msg("cover not loaded")
		return nil
	}
	cover := canvas.NewImageFromImage(img)
	cover.FillMode = canvas.ImageFillContain
	cover.SetMinSize(fyne.NewSize(float32(c.coverSize), float32(c.coverSize)))
	return cover
}

func (c *Controller) showRowMenu(e library.Entry, pe *fyne.PointEvent) {
	items := []*fyne.MenuItem{
		fyne.NewMenuItem("Play", func() { c.launch(e) }),
	}
	if e.HasGuide() {
		items = append(items, fyne.NewMenuItem("Guide", func() { c.showGuide(e) }))
	}
	widget.ShowPopUpMenuAtPosition(fyne.NewMenu("", items...), c.win.Canvas(), pe.AbsolutePosition)
}

func (c *Controller) launch(e library.Entry) {
	if err := c.launcher.Launch(e.Path); err != nil {
		c.fail("launch", err)
	}
}

func (c *Controller) showGuide(e library.Entry) {
	text, err := c.lib.Guide(e)
	if err != nil {
		c.fail("guide", err)
		return
	}

	guide := widget.NewRichTextFromMarkdown(text)
	guide.Wrapping = fyne.TextWrapWord

	d := dialog.NewCustom(e.Name, "Close", container.NewVScroll(guide), c.win)
	d.Resize(fyne.NewSize(520, 420))
	d.Show()
}
