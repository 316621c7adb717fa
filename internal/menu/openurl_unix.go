//go:build !windows && !darwin
// +build !windows,!darwin

package menu

import "os/exec"

func launchURL(raw string) error {
	return exec.Command("xdg-open", raw).Start()
}
