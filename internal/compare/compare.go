// Package compare reconciles this scanner's findings against an
// independent reference scan of the same target.
package compare

import (
	"context"
	"sort"
)

// ReferenceScanner produces the set of ports an external tool reports
// open on a target. The narrow interface keeps the reference tool's
// output parsing replaceable without touching reconciliation.
type ReferenceScanner interface {
	OpenPorts(ctx context.Context, ip string, ports []int) ([]int, error)
}

// Reconciliation is the read-only outcome of comparing two findings
// sets. All slices are sorted ascending.
type Reconciliation struct {
	Matches       []int
	OnlyLocal     []int
	OnlyReference []int
	// Accuracy is |matches| / |union| * 100, and 0 when both sets are
	// empty (no evidence from either side).
	Accuracy float64
}

// Comparison pairs a reconciliation with the two raw port sets, for
// reporting.
type Comparison struct {
	Local     []int
	Reference []int
	Reconciliation
}

// Comparator validates scan findings against a reference scanner.
// Advisory only: it never mutates the scan's own findings.
type Comparator struct {
	Ref ReferenceScanner
}

func New(ref ReferenceScanner) *Comparator {
	return &Comparator{Ref: ref}
}

// Compare runs the reference scan and reconciles its findings with
// local. A non-empty restrict list limits the reference scan to those
// ports; otherwise the reference tool runs in its default fast mode.
func (c *Comparator) Compare(ctx context.Context, ip string, local []int, restrict []int) (*Comparison, error) {
	reference, err := c.Ref.OpenPorts(ctx, ip, restrict)
	if err != nil {
		return nil, err
	}

	cmp := &Comparison{
		Local:          sortedCopy(local),
		Reference:      sortedCopy(reference),
		Reconciliation: Reconcile(local, reference),
	}
	return cmp, nil
}

// Reconcile computes the intersection, both difference sets and the
// union-based accuracy ratio of two port sets.
func Reconcile(local, reference []int) Reconciliation {
	l := toSet(local)
	r := toSet(reference)

	rec := Reconciliation{
		Matches:       []int{},
		OnlyLocal:     []int{},
		OnlyReference: []int{},
	}

	union := map[int]struct{}{}
	for p := range l {
		union[p] = struct{}{}
		if _, ok := r[p]; ok {
			rec.Matches = append(rec.Matches, p)
		} else {
			rec.OnlyLocal = append(rec.OnlyLocal, p)
		}
	}
	for p := range r {
		union[p] = struct{}{}
		if _, ok := l[p]; !ok {
			rec.OnlyReference = append(rec.OnlyReference, p)
		}
	}

	sort.Ints(rec.Matches)
	sort.Ints(rec.OnlyLocal)
	sort.Ints(rec.OnlyReference)

	if len(union) > 0 {
		rec.Accuracy = float64(len(rec.Matches)) / float64(len(union)) * 100
	}
	return rec
}

func toSet(ports []int) map[int]struct{} {
	out := make(map[int]struct{}, len(ports))
	for _, p := range ports {
		out[p] = struct{}{}
	}
	return out
}

func sortedCopy(ports []int) []int {
	out := make([]int, len(ports))
	copy(out, ports)
	sort.Ints(out)
	return out
}
