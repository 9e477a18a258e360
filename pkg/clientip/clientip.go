// Package clientip resolves the address a request came from, for rate limiting and logs.
package clientip

import (
	"net"
	"net/http"
	"strings"
)

// RealClientIP returns the client IP of r. With trustProxy it honours the first
// X-Forwarded-For hop, then X-Real-IP; otherwise only r.RemoteAddr is used, since
// headers from an untrusted peer can be forged.
func RealClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			first, _, _ := strings.Cut(fwd, ",")
			if ip := strings.TrimSpace(first); net.ParseIP(ip) != nil {
				return ip
			}
		}
		if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); net.ParseIP(ip) != nil {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return strings.TrimSpace(host)
}
