package netutil

import (
	"errors"
	"fmt"
	"net"
)

// ResolveIPv4 resolves a hostname or IP literal to its first IPv4
// address. A scan must not proceed when resolution fails.
func ResolveIPv4(target string) (string, error) {
	if ip := net.ParseIP(target); ip != nil {
		if ip4 := ip.To4(); ip4 != nil {
			return ip4.String(), nil
		}
		return "", errors.New("IPv6 addresses are not supported")
	}

	ips, err := net.LookupIP(target)
	if err != nil {
		return "", fmt.Errorf("could not resolve %s: %w", target, err)
	}
	for _, ip := range ips {
		if ip4 := ip.To4(); ip4 != nil {
			return ip4.String(), nil
		}
	}
	return "", fmt.Errorf("no IPv4 address found for %s", target)
}
