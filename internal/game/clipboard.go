package game

import (
	"errors"

	"github.com/atotto/clipboard"
)

var errNoClipboard = errors.New("clipboard unsupported on this system")

func setClipboardText(text string) error {
	if clipboard.Unsupported {
		return errNoClipboard
	}
	if text == "" {
		text = " "
	}
	return clipboard.WriteAll(text)
}
