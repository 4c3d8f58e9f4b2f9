package middleware

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// TrustedRealIP rewrites RemoteAddr from X-Forwarded-For, but only when the
// direct peer is loopback or inside one of the trusted proxy prefixes.
// Requests from any other peer keep their socket address, so a client cannot
// pick its own rate limit key.
func TrustedRealIP(trusted []netip.Prefix) func(http.Handler) http.Handler {
	isTrusted := func(addr netip.Addr) bool {
		if addr.IsLoopback() {
			return true
		}
		for _, p := range trusted {
			if p.Contains(addr) {
				return true
			}
		}
		return false
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			peer, ok := parseAddr(ClientIP(r))
			if ok && isTrusted(peer) {
				if ip := forwardedClient(r.Header.Values("X-Forwarded-For"), isTrusted); ip != "" {
					r.RemoteAddr = ip
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// forwardedClient walks the forwarded chain from the nearest hop outwards
// and returns the first address that is not a trusted proxy. When every hop
// is trusted the outermost valid address wins.
func forwardedClient(values []string, isTrusted func(netip.Addr) bool) string {
	var hops []netip.Addr
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if addr, ok := parseAddr(strings.TrimSpace(part)); ok {
				hops = append(hops, addr)
			}
		}
	}
	if len(hops) == 0 {
		return ""
	}
	for i := len(hops) - 1; i >= 0; i-- {
		if !isTrusted(hops[i]) {
			return hops[i].String()
		}
	}
	return hops[0].String()
}

func parseAddr(s string) (netip.Addr, bool) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}

// ClientIP returns the host part of RemoteAddr. Run TrustedRealIP first to
// honour forwarding proxies.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
