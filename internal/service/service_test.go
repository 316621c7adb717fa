package service

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/vl-arch/vl-arch/internal/ipc"
	"github.com/vl-arch/vl-arch/internal/menu"
	"github.com/vl-arch/vl-arch/internal/protocol"
	"github.com/vl-arch/vl-arch/internal/security"
)

type fakeSource struct {
	links    []menu.Link
	refreshC chan struct{}
}

func (f *fakeSource) CurrentLinks() []menu.Link { return f.links }

func (f *fakeSource) RequestRefresh() {
	select {
	case f.refreshC <- struct{}{}:
	default:
	}
}

func startService(t *testing.T, src *fakeSource) (ipc.Endpoint, string, context.CancelFunc) {
	t.Helper()

	svc, err := New("test-secret", src)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = svc.Serve(ctx, ln) }()

	endpoint := ipc.Endpoint{Network: "tcp", Address: ln.Addr().String()}
	return endpoint, security.DeriveServiceToken("test-secret"), cancel
}

func TestServiceRejectsBadToken(t *testing.T) {
	src := &fakeSource{refreshC: make(chan struct{}, 1)}
	endpoint, _, cancel := startService(t, src)
	defer cancel()

	resp, err := Query(context.Background(), endpoint, protocol.Request{
		Token:   "wrong",
		Command: protocol.CommandLinksGet,
	})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if resp.Error != "unauthorized" {
		t.Fatalf("expected unauthorized, got %+v", resp)
	}
	if len(resp.Links) != 0 {
		t.Fatal("unauthorized response must not carry links")
	}
}

func TestServiceLinksGet(t *testing.T) {
	src := &fakeSource{
		links:    []menu.Link{{ID: "vlarch_help", Label: "VL-Arch Help", URL: "https://vlarch.com/support"}},
		refreshC: make(chan struct{}, 1),
	}
	endpoint, token, cancel := startService(t, src)
	defer cancel()

	resp, err := Query(context.Background(), endpoint, protocol.Request{
		Token:     token,
		Command:   protocol.CommandLinksGet,
		RequestID: "req-1",
	})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if resp.Error != "" {
		t.Fatalf("unexpected error response: %s", resp.Error)
	}
	if resp.RequestID != "req-1" {
		t.Fatalf("request id not echoed: %q", resp.RequestID)
	}
	if len(resp.Links) != 1 || resp.Links[0].URL != "https://vlarch.com/support" {
		t.Fatalf("unexpected links: %v", resp.Links)
	}
}

func TestServiceLinksReload(t *testing.T) {
	src := &fakeSource{refreshC: make(chan struct{}, 1)}
	endpoint, token, cancel := startService(t, src)
	defer cancel()

	resp, err := Query(context.Background(), endpoint, protocol.Request{
		Token:   token,
		Command: protocol.CommandLinksReload,
	})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if resp.Error != "" {
		t.Fatalf("unexpected error response: %s", resp.Error)
	}

	select {
	case <-src.refreshC:
	case <-time.After(2 * time.Second):
		t.Fatal("refresh request was not delivered")
	}
}

func TestServiceUnknownCommand(t *testing.T) {
	src := &fakeSource{refreshC: make(chan struct{}, 1)}
	endpoint, token, cancel := startService(t, src)
	defer cancel()

	resp, err := Query(context.Background(), endpoint, protocol.Request{
		Token:   token,
		Command: "links.delete",
	})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if resp.Error == "" {
		t.Fatal("expected error for unknown command")
	}
}
