package utils

import (
	"net"
)

// IsAllowedIP reports whether ip falls inside any of the allowed CIDR ranges.
// Unparseable entries in the list are skipped rather than treated as a match.
func IsAllowedIP(ip string, allowedCIDRs []string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}

	for _, cidr := range allowedCIDRs {
		_, netblock, err := net.ParseCIDR(cidr)
		if err != nil {
			continue
		}
		if netblock.Contains(parsed) {
			return true
		}
	}
	return false
}
