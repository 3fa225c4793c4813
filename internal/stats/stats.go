// Package stats tracks outline scan activity for the /api/stats endpoint.
package stats

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp  time.Time
	durationUs int64
}

// Snapshot is a point-in-time aggregate of scan activity. Latency figures
// cover scans within the rolling window; counters are cumulative.
type Snapshot struct {
	Documents       int64 `json:"documents"`
	Headings        int64 `json:"headings"`
	StructureErrors int64 `json:"structure_errors"`
	CancelledScans  int64 `json:"cancelled_scans"`

	WindowCount int     `json:"window_count"`
	MinUs       int64   `json:"min_us"`
	MaxUs       int64   `json:"max_us"`
	AvgUs       float64 `json:"avg_us"`
	P50Us       float64 `json:"p50_us"`
	P95Us       float64 `json:"p95_us"`
}

// ScanStats accumulates counters and recent scan durations within a
// rolling window.
type ScanStats struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration

	documents       int64
	headings        int64
	structureErrors int64
	cancelled       int64
}

func NewScanStats(maxAge time.Duration) *ScanStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &ScanStats{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
	}
}

// RecordScan records a completed scan with its heading count and duration.
func (s *ScanStats) RecordScan(headings int, d time.Duration) {
	us := d.Microseconds()
	if us < 0 {
		us = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents++
	s.headings += int64(headings)
	s.pruneLocked(now)
	s.samples = append(s.samples, sample{timestamp: now, durationUs: us})
}

// RecordStructureError counts a scan aborted by an invalid level transition.
func (s *ScanStats) RecordStructureError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.structureErrors++
}

// RecordCancelled counts a scan abandoned on host cancellation.
func (s *ScanStats) RecordCancelled() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelled++
}

func (s *ScanStats) Snapshot() Snapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	snap := Snapshot{
		Documents:       s.documents,
		Headings:        s.headings,
		StructureErrors: s.structureErrors,
		CancelledScans:  s.cancelled,
	}
	if len(s.samples) == 0 {
		return snap
	}

	values := make([]int64, 0, len(s.samples))
	var sum int64
	for _, sm := range s.samples {
		values = append(values, sm.durationUs)
		sum += sm.durationUs
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	snap.WindowCount = len(values)
	snap.MinUs = values[0]
	snap.MaxUs = values[len(values)-1]
	snap.AvgUs = float64(sum) / float64(len(values))
	snap.P50Us = percentile(values, 50)
	snap.P95Us = percentile(values, 95)
	return snap
}

func (s *ScanStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	writeIdx := 0
	for _, sm := range s.samples {
		if !sm.timestamp.Before(cutoff) {
			s.samples[writeIdx] = sm
			writeIdx++
		}
	}
	s.samples = s.samples[:writeIdx]
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
