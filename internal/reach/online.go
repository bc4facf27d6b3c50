package reach

import (
	"net"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// InterfacesOnline reports whether any non-loopback interface is up and has
// an address assigned.
func InterfacesOnline() bool {
	ifaces, err := net.Interfaces()
	if err != nil {
		return true
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err == nil && len(addrs) > 0 {
			return true
		}
	}
	return false
}

// CachedOnline wraps fn so it is evaluated at most once per ttl.
func CachedOnline(fn OnlineFunc, ttl time.Duration, clock clockwork.Clock) OnlineFunc {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	var (
		mu      sync.Mutex
		checked time.Time
		last    bool
	)
	return func() bool {
		mu.Lock()
		defer mu.Unlock()
		now := clock.Now()
		if checked.IsZero() || now.Sub(checked) >= ttl {
			last = fn()
			checked = now
		}
		return last
	}
}

// OnlineFor returns the online signal appropriate for the API base URL.
// Loopback backends do not depend on external interfaces.
func OnlineFor(baseURL string) OnlineFunc {
	if IsLoopback(baseURL) {
		return func() bool { return true }
	}
	return CachedOnline(InterfacesOnline, 2*time.Second, nil)
}

// IsLoopback reports whether rawURL points at the local machine.
func IsLoopback(rawURL string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	host := u.Hostname()
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
