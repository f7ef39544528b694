// Package fetcher retrieves article pages and extracts their readable text.
package fetcher

import (
	"fmt"
	"net"
	"net/url"
)

// validateURL validates a URL for safety before making an HTTP request.
// It checks the scheme (only http/https allowed), requires a hostname, and
// when denyPrivateIPs is set resolves the host and rejects private,
// loopback, and link-local targets so a hostile article URL cannot steer
// the fetcher at internal services.
//
// Blocked ranges (when denyPrivateIPs is true):
//   - 127.0.0.0/8 and ::1 (loopback)
//   - 10.0.0.0/8, 172.16.0.0/12, 192.168.0.0/16, fc00::/7 (private)
//   - 169.254.0.0/16, fe80::/10 (link-local, covers cloud metadata)
func validateURL(urlStr string, denyPrivateIPs bool) error {
	u, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("%w: parse error: %v", ErrInvalidURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme '%s' not allowed (only http/https)", ErrInvalidURL, u.Scheme)
	}

	hostname := u.Hostname()
	if hostname == "" {
		return fmt.Errorf("%w: empty hostname", ErrInvalidURL)
	}

	if !denyPrivateIPs {
		return nil
	}

	// Resolve before connecting so DNS-based SSRF is caught too.
	ips, err := net.LookupIP(hostname)
	if err != nil {
		return fmt.Errorf("%w: DNS lookup failed for %s: %v", ErrInvalidURL, hostname, err)
	}
	for _, ip := range ips {
		if isPrivateIP(ip) {
			return fmt.Errorf("%w: hostname '%s' resolves to private IP %s", ErrPrivateIP, hostname, ip.String())
		}
	}

	return nil
}

// isPrivateIP reports whether the IP is loopback, private, or link-local.
// Both IPv4 and IPv6 ranges are covered.
func isPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast()
}
