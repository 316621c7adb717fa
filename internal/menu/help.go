package menu

import "fmt"

// HelpSubmenuID is the well-known identifier of the Help submenu. The host
// application installs a stock Help submenu under this identifier; the helper
// replaces it with its own.
const HelpSubmenuID = "help"

// Action identifiers for the custom Help submenu.
const (
	ActionPrivacyPolicy = "privacy_policy"
	ActionReportIssue   = "report_issue"
	ActionHelp          = "vlarch_help"
)

// Link couples a Help submenu action with its display label and the URL the
// action navigates to.
type Link struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

// DefaultLinks returns the stock Help submenu entries in display order.
func DefaultLinks() []Link {
	return []Link{
		{ID: ActionPrivacyPolicy, Label: "Privacy Policy", URL: "https://vlarch.com/privacy-policy"},
		{ID: ActionReportIssue, Label: "Report An Issue...", URL: "https://github.com/vl-arch/vl-arch/issues"},
		{ID: ActionHelp, Label: "VL-Arch Help", URL: "https://vlarch.com/support"},
	}
}

// CustomizeHelpMenu replaces the bar's Help submenu with one built from the
// given links and registers a bar-wide activation listener that opens the
// matching URL through launcher.
//
// A pre-existing Help submenu is removed first; its absence is not an error.
// The first link is separated from the rest of the group by a divider.
// Construction or append failures propagate to the caller; the caller decides
// whether startup aborts.
func CustomizeHelpMenu(bar *Bar, launcher Launcher, links []Link) error {
	if bar == nil {
		return fmt.Errorf("menu bar not constructed")
	}
	if launcher == nil {
		launcher = SystemLauncher{}
	}
	if len(links) == 0 {
		links = DefaultLinks()
	}

	bar.Remove(HelpSubmenuID)

	sb := NewSubmenu(HelpSubmenuID, "Help")
	for i, link := range links {
		if i == 1 {
			sb.Separator()
		}
		sb.Text(link.ID, link.Label)
	}

	sub, err := sb.Build()
	if err != nil {
		return fmt.Errorf("build help submenu: %w", err)
	}
	if err := bar.Append(sub); err != nil {
		return fmt.Errorf("append help submenu: %w", err)
	}

	targets := make(map[string]string, len(links))
	for _, link := range links {
		targets[link.ID] = link.URL
	}

	bar.OnEvent(func(ev Event) {
		target, ok := targets[ev.ID]
		if !ok {
			return
		}
		// Navigation is best effort: a failed open is intentionally
		// discarded, never retried or surfaced.
		_ = launcher.OpenURL(target)
	})

	return nil
}
