// Package fetcher builds the outbound HTTP client the news importer
// downloads feeds with.
//
// Feed URLs are checked when they are saved, but DNS answers change and
// servers redirect, so the client checks again on every connection: the
// dialer refuses private addresses after resolution, redirects are capped
// and must stay on http(s), and bodies are cut off at a maximum size.
package fetcher

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/netip"
	"syscall"
	"time"
)

var (
	ErrPrivateAddress   = errors.New("destination is a private network address")
	ErrTooManyRedirects = errors.New("too many redirects")
	ErrBodyTooLarge     = errors.New("response body too large")
	ErrUnsupportedURL   = errors.New("only http and https URLs can be fetched")
)

// NewClient returns an *http.Client that enforces cfg.
func NewClient(cfg Config) *http.Client {
	dialer := &net.Dialer{Timeout: 10 * time.Second, KeepAlive: 30 * time.Second}
	if cfg.DenyPrivateIPs {
		dialer.Control = denyPrivate
	}
	transport := &http.Transport{
		// No proxy: the dialer must see the real destination.
		Proxy:               nil,
		DialContext:         dialer.DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig:     &tls.Config{MinVersion: tls.VersionTLS12},
	}
	return &http.Client{
		Timeout:   cfg.Timeout,
		Transport: &limitedTransport{next: transport, max: cfg.MaxBodySize},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > cfg.MaxRedirects {
				return fmt.Errorf("%w: %d", ErrTooManyRedirects, len(via))
			}
			if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
				return fmt.Errorf("%w: redirect to %s", ErrUnsupportedURL, req.URL.Scheme)
			}
			return nil
		},
	}
}

// denyPrivate runs after DNS resolution with the literal address being dialed.
func denyPrivate(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	ip, err := netip.ParseAddr(host)
	if err != nil {
		return err
	}
	if IsPrivate(ip) {
		return fmt.Errorf("%w: %s", ErrPrivateAddress, ip)
	}
	return nil
}

// IsPrivate reports loopback, RFC 1918 / RFC 4193, link-local and
// unspecified addresses. IPv4-mapped IPv6 addresses are unmapped first.
func IsPrivate(ip netip.Addr) bool {
	ip = ip.Unmap()
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() || ip.IsUnspecified()
}

type limitedTransport struct {
	next http.RoundTripper
	max  int64
}

func (t *limitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil || t.max <= 0 {
		return resp, err
	}
	if resp.ContentLength > t.max {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %d bytes", ErrBodyTooLarge, resp.ContentLength)
	}
	resp.Body = &limitedBody{rc: resp.Body, max: t.max}
	return resp, nil
}

// limitedBody fails the read that crosses max instead of truncating
// silently, so a parser never sees a cut-off document as complete.
type limitedBody struct {
	rc   io.ReadCloser
	max  int64
	read int64
}

func (b *limitedBody) Read(p []byte) (int, error) {
	if b.read > b.max {
		return 0, ErrBodyTooLarge
	}
	if rem := b.max - b.read + 1; int64(len(p)) > rem {
		p = p[:rem]
	}
	n, err := b.rc.Read(p)
	b.read += int64(n)
	if b.read > b.max {
		return n - int(b.read-b.max), ErrBodyTooLarge
	}
	return n, err
}

func (b *limitedBody) Close() error { return b.rc.Close() }
