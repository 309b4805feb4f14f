package notification

import (
	"log"

	"github.com/sqweek/dialog"
)

// ShowBlockingError logs the message and shows it in a native error box.
// It blocks until the user dismisses the box.
func ShowBlockingError(title, message string) {
	log.Printf("%s: %s", title, message)
	dialog.Message("%s", message).Title(title).Error()
}

// ShowError shows an error box without blocking the caller.
func ShowError(title, message string) {
	log.Printf("%s: %s", title, message)
	go dialog.Message("%s", message).Title(title).Error()
}

// ShowInfo shows an information box without blocking the caller.
func ShowInfo(title, message string) {
	go dialog.Message("%s", message).Title(title).Info()
}
