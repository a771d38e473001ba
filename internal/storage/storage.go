// Package storage persists scan history: one record per run plus the
// findings that run produced.
package storage

import (
	"encoding/json"
	"errors"
	"sort"

	"go.etcd.io/bbolt"

	"github.com/connscan/connscan/internal/model"
)

const (
	bucketRuns     = "runs"
	bucketFindings = "findings"
)

type Storage struct {
	db *bbolt.DB
}

func NewStorage(dbPath string) (*Storage, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		if _, e := tx.CreateBucketIfNotExists([]byte(bucketRuns)); e != nil {
			return e
		}
		if _, e := tx.CreateBucketIfNotExists([]byte(bucketFindings)); e != nil {
			return e
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// AddScanRun stores the run record and its findings under the run ID.
func (s *Storage) AddScanRun(run *model.ScanRun, findings []model.Finding) error {
	runData, err := json.Marshal(run)
	if err != nil {
		return err
	}
	findingsData, err := json.Marshal(findings)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		runs := tx.Bucket([]byte(bucketRuns))
		if runs == nil {
			return errors.New("runs bucket not found")
		}
		if err := runs.Put([]byte(run.ID), runData); err != nil {
			return err
		}

		fb := tx.Bucket([]byte(bucketFindings))
		if fb == nil {
			return errors.New("findings bucket not found")
		}
		return fb.Put([]byte(run.ID), findingsData)
	})
}

// ListScanRuns returns stored runs, most recent first, capped at limit
// when limit > 0.
func (s *Storage) ListScanRuns(limit int) ([]model.ScanRun, error) {
	out := []model.ScanRun{}

	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketRuns))
		if b == nil {
			return errors.New("runs bucket not found")
		}
		return b.ForEach(func(k, v []byte) error {
			var r model.ScanRun
			if err := json.Unmarshal(v, &r); err != nil {
				return err
			}
			out = append(out, r)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// GetFindings returns the findings recorded for a run, or ok=false if
// the run is unknown.
func (s *Storage) GetFindings(runID string) ([]model.Finding, bool, error) {
	var findings []model.Finding
	var ok bool

	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketFindings))
		if b == nil {
			return errors.New("findings bucket not found")
		}
		v := b.Get([]byte(runID))
		if v == nil {
			return nil
		}
		ok = true
		return json.Unmarshal(v, &findings)
	})
	if err != nil {
		return nil, false, err
	}
	return findings, ok, nil
}
