package model

import "time"

// Finding is a single confirmed-open port on the scanned target.
type Finding struct {
	Port    int    `json:"port"`
	Service string `json:"service"`
}

// Run statuses recorded in scan history.
const (
	StatusCompleted   = "completed"
	StatusInterrupted = "interrupted"
)

// ScanRun describes one scan invocation for reporting and history.
type ScanRun struct {
	ID         string    `json:"id"`
	Target     string    `json:"target"`
	IP         string    `json:"ip"`
	Mode       string    `json:"mode"`
	PortsSpec  string    `json:"ports_spec"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Probed     int       `json:"probed"`
	Found      int       `json:"found"`
	Status     string    `json:"status"`
}

// Duration is the wall-clock time the scan took.
func (r *ScanRun) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
