package tui

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
)

var errClipboardUnsupported = errors.New("no clipboard utility found (install xclip, xsel or wl-clipboard)")

func copyToClipboard(s string) error {
	if clipboard.Unsupported {
		return errClipboardUnsupported
	}
	return clipboard.WriteAll(strings.ReplaceAll(s, "\r\n", "\n"))
}
