//go:build cgo || windows
// +build cgo windows

package tray

import (
	"context"
	"runtime"
	"sync"

	"github.com/getlantern/systray"
)

type systrayController struct {
	mu      sync.Mutex
	entries []trayEntry
}

type trayEntry struct {
	item   *systray.MenuItem
	cancel context.CancelFunc
}

func newController() controller {
	return &systrayController{}
}

func (c *systrayController) Run(ctx context.Context, updates <-chan Update) error {
	done := make(chan struct{})

	go systray.Run(func() {
		if iconData != nil {
			systray.SetIcon(iconData)
			if runtime.GOOS == "darwin" {
				systray.SetTemplateIcon(iconData, iconData)
			}
		}
		systray.SetTooltip("VL-Arch")

		quit := systray.AddMenuItem("Quit VL-Arch Helper", "Exit the menu helper")
		go func() {
			for {
				select {
				case <-ctx.Done():
					systray.Quit()
					return
				case <-quit.ClickedCh:
					systray.Quit()
					return
				}
			}
		}()

		go c.listen(ctx, updates)
	}, func() {
		c.shutdown()
		close(done)
	})

	select {
	case <-ctx.Done():
		systray.Quit()
		<-done
		return ctx.Err()
	case <-done:
		return nil
	}
}

func (c *systrayController) listen(ctx context.Context, updates <-chan Update) {
	for {
		select {
		case <-ctx.Done():
			systray.Quit()
			return
		case up, ok := <-updates:
			if !ok {
				systray.Quit()
				return
			}
			c.render(ctx, up)
		}
	}
}

func (c *systrayController) render(ctx context.Context, up Update) {
	c.mu.Lock()
	old := c.entries
	c.entries = nil
	c.mu.Unlock()

	for _, entry := range old {
		entry.cancel()
		if entry.item != nil {
			entry.item.Hide()
		}
	}

	if up.Bar == nil {
		return
	}

	newEntries := make([]trayEntry, 0)
	for _, sub := range up.Bar.Submenus() {
		parent := systray.AddMenuItem(sub.Title, "")
		newEntries = append(newEntries, trayEntry{item: parent, cancel: func() {}})

		for _, item := range sub.Items {
			if item.Separator {
				mi := parent.AddSubMenuItem("—", "")
				mi.Disable()
				newEntries = append(newEntries, trayEntry{item: mi, cancel: func() {}})
				continue
			}

			mi := parent.AddSubMenuItem(item.Label, "")
			ctxItem, cancel := context.WithCancel(ctx)
			go func(ch <-chan struct{}, id string) {
				for {
					select {
					case <-ctxItem.Done():
						return
					case _, ok := <-ch:
						if !ok {
							return
						}
						up.Bar.Activate(id)
					}
				}
			}(mi.ClickedCh, item.ID)
			newEntries = append(newEntries, trayEntry{item: mi, cancel: cancel})
		}
	}

	if up.Tooltip != "" {
		systray.SetTooltip(up.Tooltip)
	}

	c.mu.Lock()
	c.entries = newEntries
	c.mu.Unlock()
}

func (c *systrayController) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, entry := range c.entries {
		entry.cancel()
	}
	c.entries = nil
}
