//go:build !cgo && !windows
// +build !cgo,!windows

package tray

import (
	"context"
	"errors"
)

type stubController struct{}

func newController() controller {
	return stubController{}
}

// Run reports that tray rendering is unavailable without cgo. Headless
// deployments can still use the CLI and IPC surfaces.
func (stubController) Run(context.Context, <-chan Update) error {
	return errors.New("system tray is unavailable without cgo support")
}
