package ports

import "sort"

// catalog maps well-known TCP ports to service names. Ports outside
// the catalog report as "Unknown".
var catalog = map[int]string{
	21:    "FTP",
	22:    "SSH",
	23:    "Telnet",
	25:    "SMTP",
	53:    "DNS",
	80:    "HTTP",
	110:   "POP3",
	143:   "IMAP",
	443:   "HTTPS",
	993:   "IMAPS",
	995:   "POP3S",
	1433:  "MSSQL",
	3306:  "MySQL",
	3389:  "RDP",
	5432:  "PostgreSQL",
	5900:  "VNC",
	6379:  "Redis",
	27017: "MongoDB",
}

// ServiceName returns the catalog name for a port, or "Unknown".
func ServiceName(port int) string {
	if name, ok := catalog[port]; ok {
		return name
	}
	return "Unknown"
}

// Common returns the catalog's port numbers sorted ascending.
func Common() []int {
	out := make([]int, 0, len(catalog))
	for p := range catalog {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}
