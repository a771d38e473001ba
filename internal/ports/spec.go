package ports

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ParseSpec parses a port specification into a sorted, deduplicated
// list. Supported forms:
//   - single: "22"
//   - list: "22,80,443"
//   - range: "1-1024"
//   - mixed: "22,80,8000-8100"
//
// Every port must be in 1..65535; out-of-range values are rejected,
// never clamped.
func ParseSpec(spec string) ([]int, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, errors.New("empty port spec")
	}

	seen := make(map[int]struct{})
	for _, tok := range strings.Split(spec, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return nil, errors.New("empty token in port spec")
		}

		if strings.Contains(tok, "-") {
			bounds := strings.SplitN(tok, "-", 2)
			start, err := parsePort(bounds[0])
			if err != nil {
				return nil, err
			}
			end, err := parsePort(bounds[1])
			if err != nil {
				return nil, err
			}
			if start > end {
				return nil, fmt.Errorf("range start greater than end: %s", tok)
			}
			for p := start; p <= end; p++ {
				seen[p] = struct{}{}
			}
			continue
		}

		p, err := parsePort(tok)
		if err != nil {
			return nil, err
		}
		seen[p] = struct{}{}
	}

	out := make([]int, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Ints(out)
	return out, nil
}

func parsePort(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid port %q", strings.TrimSpace(s))
	}
	if v < 1 || v > 65535 {
		return 0, fmt.Errorf("port %d out of range 1..65535", v)
	}
	return v, nil
}
