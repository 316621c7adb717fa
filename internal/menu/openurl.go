package menu

import (
	"errors"
	"fmt"
	"net/url"
)

// Launcher opens a URL in the user's default handler, typically a browser.
// Implementations fire and forget: a returned error means the open could not
// be attempted, not that navigation failed.
type Launcher interface {
	OpenURL(url string) error
}

// SystemLauncher defers to the operating system's URL handler. Validation is
// shared here so the OS-specific launchers can stay minimal.
type SystemLauncher struct{}

// OpenURL validates the URL and hands it to the platform launcher.
func (SystemLauncher) OpenURL(raw string) error {
	if raw == "" {
		return errors.New("empty url")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}

	return launchURL(raw)
}
