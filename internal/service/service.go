// Package service exposes the helper's local IPC surface. The host VL-Arch
// application connects over loopback to read the current Help submenu links
// or to force an immediate re-sync.
package service

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/vl-arch/vl-arch/internal/ipc"
	"github.com/vl-arch/vl-arch/internal/logging"
	"github.com/vl-arch/vl-arch/internal/menu"
	"github.com/vl-arch/vl-arch/internal/protocol"
	"github.com/vl-arch/vl-arch/internal/security"
)

const connTimeout = 5 * time.Second

// Source supplies the data the IPC surface serves.
type Source interface {
	// CurrentLinks returns the effective Help submenu links.
	CurrentLinks() []menu.Link
	// RequestRefresh asks for an immediate configuration re-sync.
	RequestRefresh()
}

// Service answers host application requests on the helper endpoint.
type Service struct {
	token    string
	endpoint ipc.Endpoint
	source   Source
}

// New constructs a Service authenticated by a token derived from the helper
// secret.
func New(secret string, src Source) (*Service, error) {
	if src == nil {
		return nil, errors.New("nil link source")
	}

	token := security.ResolveServiceToken(secret)
	if token == "" {
		return nil, errors.New("service token could not be resolved; set VLARCH_SERVICE_TOKEN or VLARCH_SECRET")
	}

	return &Service{
		token:    token,
		endpoint: ipc.DefaultEndpoint(),
		source:   src,
	}, nil
}

// Run listens on the default endpoint and serves until the context ends.
func (s *Service) Run(ctx context.Context) error {
	ln, err := s.endpoint.Listen()
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.endpoint, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on the provided listener until the context ends.
func (s *Service) Serve(ctx context.Context, ln net.Listener) error {
	defer ln.Close()

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	log.Printf("VL-Arch helper IPC listening on %s", ln.Addr())

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			log.Printf("ipc accept error: %v", err)
			continue
		}
		go s.handleConn(conn)
	}
}

func (s *Service) handleConn(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(connTimeout))

	var req protocol.Request
	if err := json.NewDecoder(conn).Decode(&req); err != nil {
		writeResponse(conn, protocol.Response{Error: "malformed request"})
		return
	}

	writeResponse(conn, s.handle(req))
}

func (s *Service) handle(req protocol.Request) protocol.Response {
	resp := protocol.Response{RequestID: req.RequestID}

	if subtle.ConstantTimeCompare([]byte(req.Token), []byte(s.token)) != 1 {
		logging.Debugf("rejected ipc request %s with bad token", req.RequestID)
		resp.Error = "unauthorized"
		return resp
	}

	switch req.Command {
	case protocol.CommandLinksGet:
		resp.Links = s.source.CurrentLinks()
	case protocol.CommandLinksReload:
		s.source.RequestRefresh()
	default:
		resp.Error = fmt.Sprintf("unknown command %q", req.Command)
	}
	return resp
}

func writeResponse(conn net.Conn, resp protocol.Response) {
	if err := json.NewEncoder(conn).Encode(resp); err != nil {
		logging.Debugf("ipc response write failed: %v", err)
	}
}

// Query dials the endpoint, sends one request and decodes the reply. It is
// the client half used by the CLI and by the host application's own
// integration.
func Query(ctx context.Context, endpoint ipc.Endpoint, req protocol.Request) (protocol.Response, error) {
	var resp protocol.Response

	conn, err := endpoint.DialContext(ctx)
	if err != nil {
		return resp, fmt.Errorf("dial %s: %w", endpoint, err)
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(connTimeout))

	if err := json.NewEncoder(conn).Encode(req); err != nil {
		return resp, fmt.Errorf("send request: %w", err)
	}
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return resp, fmt.Errorf("read response: %w", err)
	}
	return resp, nil
}
