package ui

// Package ui contains the Fyne desktop interface: the main menu, the player
// screen listing games from the library, the developer screen for managing
// game folders, and the contact dialog.
