package main

import (
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

// pastedPath turns clipboard contents into a single file path. File
// managers copy paths quoted or as file:// URLs, sometimes several per
// line; only the first is kept.
func pastedPath(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.Trim(line, `"'`)
		if strings.HasPrefix(line, "file://") {
			if u, err := url.Parse(line); err == nil {
				return u.Path
			}
		}
		return stripControl(line)
	}
	return ""
}

func stripControl(text string) string {
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r >= 32 && r != 127 {
			result.WriteRune(r)
		}
	}
	return result.String()
}
