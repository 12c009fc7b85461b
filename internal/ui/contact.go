package ui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

func (c *Controller) showContactDialog() {
	message := widget.NewMultiLineEntry()
	message.Wrapping = fyne.TextWrapWord
	message.SetMinRowsVisible(10)

	var d dialog.Dialog
	send := widget.NewButton("Send", func() {
		if c.submitContact(message.Text) {
			d.Hide()
		}
	})

	content := container.NewBorder(widget.NewLabel("Enter your message:"), send, nil, nil, message)
	d = dialog.NewCustom("Contact Developer", "Cancel", content, c.win)
	d.Resize(fyne.NewSize(440, 360))
	d.Show()
}

// submitContact sends body and reports the outcome. It returns true when
// the message was delivered.
func (c *Controller) submitContact(body string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), c.mailer.Timeout())
	defer cancel()

	if err := c.mailer.Send(ctx, body); err != nil {
		c.fail("contact", err)
		return false
	}
	c.notify.Info("Success", "Message sent successfully.")
	return true
}
