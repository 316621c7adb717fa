package protocol

import "github.com/vl-arch/vl-arch/internal/menu"

const (
	// CommandLinksGet requests the helper's current Help submenu links.
	CommandLinksGet = "links.get"
	// CommandLinksReload asks the helper to re-sync configuration and remote
	// overrides immediately.
	CommandLinksReload = "links.reload"
)

// Request is the IPC payload sent from the host application to the helper.
type Request struct {
	Token     string `json:"token"`
	Command   string `json:"command"`
	RequestID string `json:"requestId,omitempty"`
}

// Response is the IPC reply emitted by the helper.
type Response struct {
	Error     string      `json:"error,omitempty"`
	RequestID string      `json:"requestId,omitempty"`
	Links     []menu.Link `json:"links,omitempty"`
}
