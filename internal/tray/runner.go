package tray

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/vl-arch/vl-arch/internal/config"
	"github.com/vl-arch/vl-arch/internal/logging"
	"github.com/vl-arch/vl-arch/internal/menu"
	"github.com/vl-arch/vl-arch/internal/remote"
)

const defaultRefreshInterval = 30 * time.Minute

// Update carries a freshly customized menu bar to the tray controller.
type Update struct {
	Bar     *menu.Bar
	Tooltip string
}

// controller renders published menu bars for the lifetime of a context.
type controller interface {
	Run(ctx context.Context, updates <-chan Update) error
}

// Runner owns the helper lifecycle: it loads configuration, applies local
// and remote link overrides, rebuilds the menu bar and hands it to the tray
// controller. It also implements service.Source so the IPC surface can read
// the current links and request refreshes.
type Runner struct {
	secret          string
	offline         bool
	launcher        menu.Launcher
	refreshInterval time.Duration

	mu         sync.RWMutex
	lastLinks  []menu.Link
	lastDigest string

	tray            controller
	updates         chan Update
	refreshRequests chan struct{}
}

// NewRunner constructs a Runner. When offline is true remote link
// synchronisation is disabled and local configuration is used exclusively.
func NewRunner(secret string, offline bool) *Runner {
	r := &Runner{
		secret:          secret,
		offline:         offline,
		launcher:        menu.SystemLauncher{},
		refreshInterval: defaultRefreshInterval,
		updates:         make(chan Update, 1),
		refreshRequests: make(chan struct{}, 1),
	}
	r.tray = newController()
	return r
}

// Start performs an initial sync, then refreshes the menu on a ticker and on
// demand. It blocks until the provided context is canceled or the tray
// controller exits.
func (r *Runner) Start(ctx context.Context) error {
	if r.offline {
		log.Printf("VL-Arch helper running in offline mode; remote link sync disabled")
	} else {
		log.Printf("VL-Arch helper starting")
	}
	logging.Debugf("runner initialising with refresh interval %s", r.refreshInterval)

	var trayErr <-chan error
	if r.tray != nil {
		ch := make(chan error, 1)
		trayErr = ch
		go func() {
			ch <- r.tray.Run(ctx, r.updates)
		}()
	}

	if err := r.syncOnce(ctx); err != nil {
		log.Printf("initial sync failed: %v", err)
	}

	ticker := time.NewTicker(r.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("VL-Arch helper stopping")
			return ctx.Err()
		case <-ticker.C:
			if err := r.syncOnce(ctx); err != nil {
				log.Printf("menu refresh failed: %v", err)
			}
		case <-r.refreshRequests:
			logging.Debugf("manual refresh requested")
			if err := r.syncOnce(ctx); err != nil {
				log.Printf("manual menu refresh failed: %v", err)
			}
		case err := <-trayErr:
			return err
		}
	}
}

// CurrentLinks returns the most recently published Help submenu links.
func (r *Runner) CurrentLinks() []menu.Link {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]menu.Link, len(r.lastLinks))
	copy(out, r.lastLinks)
	return out
}

// RequestRefresh schedules an immediate re-sync. Pending requests coalesce.
func (r *Runner) RequestRefresh() {
	select {
	case r.refreshRequests <- struct{}{}:
	default:
	}
}

func (r *Runner) syncOnce(ctx context.Context) error {
	cfg, err := config.Load(r.secret)
	if err != nil {
		return err
	}

	links := EffectiveLinks(cfg)
	logging.Debugf("resolved %d links from local configuration", len(links))

	if r.offline {
		logging.Debugf("offline mode enabled; skipping remote lookup")
	} else {
		opts := remote.DetectOptions()
		remoteLinks, err := remote.FetchLinks(ctx, nil, opts)
		if err != nil {
			log.Printf("remote link sync failed: %v", err)
		} else if len(remoteLinks) > 0 {
			links = mergeRemote(links, remoteLinks)
			logging.Debugf("applied %d remote link overrides", len(remoteLinks))
		}
	}

	tooltip := cfg.Tooltip
	if tooltip == "" {
		tooltip = "VL-Arch"
	}

	return r.setState(links, tooltip)
}

// EffectiveLinks resolves the stock Help links with the configuration's
// local overrides applied.
func EffectiveLinks(cfg *config.Config) []menu.Link {
	links := menu.DefaultLinks()
	if cfg == nil {
		return links
	}
	for i := range links {
		ov := cfg.Override(links[i].ID)
		if ov == nil {
			continue
		}
		if ov.Label != "" {
			links[i].Label = ov.Label
		}
		if ov.URL != "" {
			links[i].URL = ov.URL
		}
	}
	return links
}

// mergeRemote applies remote overrides onto known actions. Identifiers the
// helper does not recognise are dropped so the dispatch set always matches
// the submenu contents.
func mergeRemote(links, overrides []menu.Link) []menu.Link {
	byID := make(map[string]menu.Link, len(overrides))
	for _, ov := range overrides {
		byID[ov.ID] = ov
	}

	out := make([]menu.Link, len(links))
	copy(out, links)
	for i := range out {
		ov, ok := byID[out[i].ID]
		if !ok {
			continue
		}
		if ov.Label != "" {
			out[i].Label = ov.Label
		}
		if ov.URL != "" {
			out[i].URL = ov.URL
		}
	}
	return out
}

func (r *Runner) setState(links []menu.Link, tooltip string) error {
	digest := hashState(links, tooltip)

	r.mu.Lock()
	if digest != "" && digest == r.lastDigest {
		r.mu.Unlock()
		return nil
	}
	r.lastLinks = make([]menu.Link, len(links))
	copy(r.lastLinks, links)
	r.lastDigest = digest
	r.mu.Unlock()

	bar := menu.NewBar()
	if err := menu.CustomizeHelpMenu(bar, r.launcher, links); err != nil {
		return err
	}

	logging.Debugf("published menu state with %d links (digest=%s)", len(links), digest)
	r.publish(Update{Bar: bar, Tooltip: tooltip})
	return nil
}

func (r *Runner) publish(up Update) {
	select {
	case r.updates <- up:
	default:
		// Drop the stale pending payload so the controller always renders
		// the latest state.
		select {
		case <-r.updates:
		default:
		}
		select {
		case r.updates <- up:
		default:
		}
	}
}

func hashState(links []menu.Link, tooltip string) string {
	payload, err := json.Marshal(struct {
		Links   []menu.Link `json:"links"`
		Tooltip string      `json:"tooltip"`
	}{links, tooltip})
	if err != nil {
		return ""
	}

	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
