package ui

import (
	"errors"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"game-portal/internal/catalog"
	"game-portal/internal/launcher"
	"game-portal/internal/library"
	"game-portal/internal/mailer"
)

// Notifier shows the outcome of a user action.
type Notifier interface {
	Error(err error)
	Info(title, message string)
}

// FolderPicker asks the user for a folder, starting at start when it is not
// empty. onPicked is not called when the user cancels.
type FolderPicker func(start string, onPicked func(path string))

type dialogNotifier struct {
	win fyne.Window
}

func (d dialogNotifier) Error(err error) {
	dialog.ShowError(err, d.win)
}

func (d dialogNotifier) Info(title, message string) {
	dialog.ShowInformation(title, message, d.win)
}

func dialogFolderPicker(win fyne.Window) FolderPicker {
	return func(start string, onPicked func(string)) {
		fd := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil {
				dialog.ShowError(err, win)
				return
			}
			if uri == nil {
				return
			}
			onPicked(uri.Path())
		}, win)
		if start != "" {
			if loc, err := storage.ListerForURI(storage.NewFileURI(start)); err == nil {
				fd.SetLocation(loc)
			}
		}
		fd.Resize(fyne.NewSize(800, 600))
		fd.Show()
	}
}

// userError carries the sentence shown in the error dialog.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

// userFacing maps package errors to the messages players and developers see.
func userFacing(err error) error {
	var msg string
	switch {
	case errors.Is(err, library.ErrAlreadyExists):
		msg = "Directory already exists."
	case errors.Is(err, library.ErrOutsideRoot), errors.Is(err, library.ErrNotDirectory):
		msg = "Invalid folder selection."
	case errors.Is(err, library.ErrNotEmpty):
		msg = "Directory is not empty and cannot be removed."
	case errors.Is(err, launcher.ErrGameNotFound):
		msg = "Game file not found."
	case errors.Is(err, mailer.ErrEmptyMessage):
		msg = "Please enter a message."
	case errors.Is(err, catalog.ErrUnavailable):
		msg = "Could not load the game list."
	case errors.Is(err, catalog.ErrInvalidTitle):
		msg = "Invalid game title."
	case errors.Is(err, catalog.ErrDownloadFailed), errors.Is(err, catalog.ErrUnsafeArchive):
		msg = "Failed to download game."
	case errors.Is(err, mailer.ErrSendFailed):
		cause := strings.TrimPrefix(err.Error(), mailer.ErrSendFailed.Error()+": ")
		msg = "Failed to send message: " + cause
	default:
		return err
	}
	return &userError{msg: msg, err: err}
}
