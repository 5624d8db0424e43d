// Package httpclient builds the HTTP client used to fetch remote API
// descriptions, optionally refusing loopback and private network hosts.
package httpclient

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/teranos/rsbind/errors"
)

// DefaultMaxRedirects bounds redirect chains
const DefaultMaxRedirects = 10

// Options configure New
type Options struct {
	// Timeout bounds a whole request; 0 means no timeout
	Timeout time.Duration

	// BlockPrivateNetworks refuses localhost, loopback, link-local and
	// RFC 1918 addresses, including after DNS resolution and redirects
	BlockPrivateNetworks bool

	// MaxRedirects defaults to DefaultMaxRedirects when 0
	MaxRedirects int
}

// ErrBlocked marks requests refused by the private network guard
var ErrBlocked = errors.New("request blocked")

// New returns an *http.Client for go-getter's HTTP getter
func New(opts Options) *http.Client {
	maxRedirects := opts.MaxRedirects
	if maxRedirects <= 0 {
		maxRedirects = DefaultMaxRedirects
	}

	client := &http.Client{Timeout: opts.Timeout}

	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirects {
			return errors.Newf("stopped after %d redirects", maxRedirects)
		}
		if err := ValidateURL(req.URL, opts.BlockPrivateNetworks); err != nil {
			return errors.Wrap(err, "redirect blocked")
		}
		return nil
	}

	if !opts.BlockPrivateNetworks {
		return client
	}

	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	client.Transport = &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			host, _, err := net.SplitHostPort(addr)
			if err != nil {
				return nil, errors.Wrap(err, "invalid address")
			}

			ips, err := net.DefaultResolver.LookupIP(ctx, "ip", host)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to resolve host %q", host)
			}
			for _, ip := range ips {
				if IsPrivateIP(ip) {
					return nil, errors.Mark(errors.Newf("private IP address blocked: %s", ip), ErrBlocked)
				}
			}

			return dialer.DialContext(ctx, network, addr)
		},
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return client
}

// ValidateURL checks an http(s) URL before it is requested. Host checks
// apply only when blockPrivate is set.
func ValidateURL(u *url.URL, blockPrivate bool) error {
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return errors.Newf("scheme %q not allowed (allowed: http, https)", scheme)
	}

	hostname := u.Hostname()
	if hostname == "" {
		return errors.New("URL missing hostname")
	}

	if !blockPrivate {
		return nil
	}
	if u.User != nil {
		return errors.Mark(errors.New("URL contains credentials"), ErrBlocked)
	}
	if isLocalhost(hostname) {
		return errors.Mark(errors.New("localhost access blocked"), ErrBlocked)
	}
	if ip := net.ParseIP(hostname); ip != nil && IsPrivateIP(ip) {
		return errors.Mark(errors.Newf("private IP address blocked: %s", hostname), ErrBlocked)
	}
	return nil
}

var privateBlocks = []net.IPNet{
	{IP: net.IPv4(10, 0, 0, 0), Mask: net.CIDRMask(8, 32)},     // 10.0.0.0/8
	{IP: net.IPv4(172, 16, 0, 0), Mask: net.CIDRMask(12, 32)},  // 172.16.0.0/12
	{IP: net.IPv4(192, 168, 0, 0), Mask: net.CIDRMask(16, 32)}, // 192.168.0.0/16
	{IP: net.IPv4(127, 0, 0, 0), Mask: net.CIDRMask(8, 32)},    // loopback
	{IP: net.IPv4(169, 254, 0, 0), Mask: net.CIDRMask(16, 32)}, // link-local
	{IP: net.IPv4(0, 0, 0, 0), Mask: net.CIDRMask(8, 32)},      // 0.0.0.0/8
	{IP: net.IPv4(224, 0, 0, 0), Mask: net.CIDRMask(4, 32)},    // multicast
	{IP: net.IPv4(240, 0, 0, 0), Mask: net.CIDRMask(4, 32)},    // reserved
}

// IsPrivateIP reports loopback, private, link-local, multicast and reserved addresses
func IsPrivateIP(ip net.IP) bool {
	if ip4 := ip.To4(); ip4 != nil {
		for _, block := range privateBlocks {
			if block.Contains(ip4) {
				return true
			}
		}
		return false
	}

	if len(ip) != net.IPv6len {
		return false
	}
	if ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsMulticast() || ip.IsUnspecified() {
		return true
	}
	// fc00::/7 unique local
	if ip[0]&0xfe == 0xfc {
		return true
	}
	// fec0::/10 site-local
	if ip[0] == 0xfe && ip[1]&0xc0 == 0xc0 {
		return true
	}
	return false
}

func isLocalhost(hostname string) bool {
	hostname = strings.ToLower(hostname)
	return hostname == "localhost" ||
		hostname == "localhost.localdomain" ||
		strings.HasSuffix(hostname, ".localhost")
}
