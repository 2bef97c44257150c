// Package connectivity watches the host network and reports whether the
// face is "connected" to its phone. On a desktop build the phone link is
// stood in for by any non-loopback interface that is up with an address.
package connectivity

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/net"
)

// Probe answers whether the link is currently up.
type Probe interface {
	Connected(ctx context.Context) (bool, error)
}

// InterfaceProbe inspects network interfaces via gopsutil.
type InterfaceProbe struct {
	// Name restricts the probe to one interface. Empty means any.
	Name string
}

// Connected reports whether a matching interface is up with at least one
// address.
func (p InterfaceProbe) Connected(ctx context.Context) (bool, error) {
	ifaces, err := net.InterfacesWithContext(ctx)
	if err != nil {
		return false, fmt.Errorf("connectivity: list interfaces: %w", err)
	}
	for _, iface := range ifaces {
		if p.Name != "" && iface.Name != p.Name {
			continue
		}
		if usable(iface) {
			return true, nil
		}
	}
	return false, nil
}

func usable(iface net.InterfaceStat) bool {
	var up bool
	for _, f := range iface.Flags {
		switch f {
		case "loopback":
			return false
		case "up":
			up = true
		}
	}
	return up && len(iface.Addrs) > 0
}

// StaticProbe always returns the same answer.
type StaticProbe bool

// Connected returns the static value.
func (p StaticProbe) Connected(context.Context) (bool, error) { return bool(p), nil }
