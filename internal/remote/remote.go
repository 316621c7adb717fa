// Package remote fetches Help submenu link overrides published for the
// VL-Arch desktop application. The integration is optional: when no endpoint
// is configured the helper runs entirely from local configuration.
package remote

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vl-arch/vl-arch/internal/logging"
	"github.com/vl-arch/vl-arch/internal/menu"
)

const maxResponseBytes = 1 << 20

var errNotFound = errors.New("remote: not found")

// Options configure the links endpoint.
type Options struct {
	URL   string
	Token string
}

// DetectOptions resolves the endpoint from the environment.
func DetectOptions() Options {
	return Options{
		URL:   strings.TrimSpace(os.Getenv("VLARCH_LINKS_URL")),
		Token: strings.TrimSpace(os.Getenv("VLARCH_LINKS_TOKEN")),
	}
}

// FetchLinks pulls published link overrides. It returns nil links without an
// error when no endpoint is configured or when the endpoint has nothing
// published for this installation.
func FetchLinks(ctx context.Context, httpClient *http.Client, opts Options) ([]menu.Link, error) {
	target := strings.TrimSpace(opts.URL)
	if target == "" {
		return nil, nil
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build links request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.Token)
	}

	logging.LogHTTPRequest(req)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch links: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read links response: %w", err)
	}

	logging.LogHTTPResponse(resp, body)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		logging.Debugf("links endpoint has nothing published (%s)", errNotFound)
		return nil, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("links endpoint returned %s", resp.Status)
	}

	links, err := parseLinks(strings.TrimSpace(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parse links payload: %w", err)
	}
	return links, nil
}

// parseLinks accepts the payload shapes publishers have used over time: a
// direct JSON array, an object wrapping the array under "links", a quoted
// JSON string, or base64-encoded JSON.
func parseLinks(value string) ([]menu.Link, error) {
	if value == "" {
		return nil, nil
	}

	candidates := []string{value}

	if unquoted, err := strconv.Unquote(value); err == nil {
		candidates = append(candidates, unquoted)
	}
	if decoded, err := base64.StdEncoding.DecodeString(value); err == nil {
		candidates = append(candidates, string(decoded))
	}

	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}

		var direct []menu.Link
		if err := json.Unmarshal([]byte(candidate), &direct); err == nil {
			return validLinks(direct), nil
		}

		var wrapped struct {
			Links []menu.Link `json:"links"`
		}
		if err := json.Unmarshal([]byte(candidate), &wrapped); err == nil && wrapped.Links != nil {
			return validLinks(wrapped.Links), nil
		}
	}

	return nil, errors.New("unsupported links payload")
}

func validLinks(links []menu.Link) []menu.Link {
	out := make([]menu.Link, 0, len(links))
	for _, link := range links {
		if link.ID == "" {
			logging.Debugf("dropping link override without identifier (label=%q)", link.Label)
			continue
		}
		out = append(out, link)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
