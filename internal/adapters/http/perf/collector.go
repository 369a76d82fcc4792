package perf

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultRingSize is the default capacity of the ring buffer.
const DefaultRingSize = 10000

// EntryKind distinguishes what was timed.
type EntryKind uint8

const (
	KindRequest EntryKind = iota // inbound HTTP request
	KindQuery                    // local activity-log database call
	KindBackend                  // outbound GraphQL or REST call
)

// Entry is a single timing record stored in the ring buffer.
type Entry struct {
	Kind       EntryKind
	Path       string // "GET /dashboard", "QueryContext", "graphql Groups"
	StatusCode int    // HTTP status; 0 for database calls
	Failed     bool   // backend call returned an error or null
	DurationMs float64
	Timestamp  time.Time
}

// Collector is a fixed-size ring buffer for timing entries.
// When full, the oldest entries are overwritten. Aggregation happens on read.
type Collector struct {
	mu      sync.Mutex
	entries []Entry
	size    int
	pos     int
	count   int64
}

// NewCollector creates a collector with the given ring buffer capacity.
// PRE: size > 0 (non-positive falls back to DefaultRingSize)
// POST: Returns a ready-to-use collector with pre-allocated storage
func NewCollector(size int) *Collector {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Collector{
		entries: make([]Entry, size),
		size:    size,
	}
}

// Record appends an entry to the ring buffer.
// PRE: e is a valid Entry
// POST: Entry stored; if buffer full, oldest entry overwritten
func (c *Collector) Record(e Entry) {
	c.mu.Lock()
	c.entries[c.pos] = e
	c.pos = (c.pos + 1) % c.size
	c.mu.Unlock()
	atomic.AddInt64(&c.count, 1)
}

// TotalRecorded returns the total number of entries ever recorded.
func (c *Collector) TotalRecorded() int64 {
	return atomic.LoadInt64(&c.count)
}

// Snapshot holds aggregated timing data computed on read.
type Snapshot struct {
	TotalRecorded   int64
	RequestP50Ms    float64
	RequestP95Ms    float64
	RequestP99Ms    float64
	BackendP95Ms    float64
	BackendFailures int
	SlowestPaths    []PathStat
	SlowestQueries  []PathStat
	SlowestBackend  []PathStat
}

// PathStat aggregates timing for a single path, query op or backend operation.
type PathStat struct {
	Path    string
	AvgMs   float64
	MaxMs   float64
	Count   int
	Failed  int
	TotalMs float64
}

type kindStats struct {
	durations []float64
	byPath    map[string]*PathStat
	failed    int
}

func (k *kindStats) add(e Entry) {
	k.durations = append(k.durations, e.DurationMs)
	s, ok := k.byPath[e.Path]
	if !ok {
		s = &PathStat{Path: e.Path}
		k.byPath[e.Path] = s
	}
	s.Count++
	s.TotalMs += e.DurationMs
	if e.DurationMs > s.MaxMs {
		s.MaxMs = e.DurationMs
	}
	if e.Failed {
		s.Failed++
		k.failed++
	}
}

// Snapshot computes aggregated stats for entries recorded at or after since.
// PRE: topN > 0
// POST: Returns percentiles and the topN slowest paths per kind
func (c *Collector) Snapshot(since time.Time, topN int) Snapshot {
	c.mu.Lock()
	buf := make([]Entry, c.size)
	copy(buf, c.entries)
	c.mu.Unlock()

	kinds := map[EntryKind]*kindStats{
		KindRequest: {byPath: map[string]*PathStat{}},
		KindQuery:   {byPath: map[string]*PathStat{}},
		KindBackend: {byPath: map[string]*PathStat{}},
	}
	for _, e := range buf {
		if e.Timestamp.IsZero() || e.Timestamp.Before(since) {
			continue
		}
		if k, ok := kinds[e.Kind]; ok {
			k.add(e)
		}
	}

	req := kinds[KindRequest]
	backend := kinds[KindBackend]
	snap := Snapshot{
		TotalRecorded:   c.TotalRecorded(),
		BackendFailures: backend.failed,
		SlowestPaths:    topByAvg(req.byPath, topN),
		SlowestQueries:  topByAvg(kinds[KindQuery].byPath, topN),
		SlowestBackend:  topByAvg(backend.byPath, topN),
	}
	if len(req.durations) > 0 {
		sort.Float64s(req.durations)
		snap.RequestP50Ms = percentile(req.durations, 50)
		snap.RequestP95Ms = percentile(req.durations, 95)
		snap.RequestP99Ms = percentile(req.durations, 99)
	}
	if len(backend.durations) > 0 {
		sort.Float64s(backend.durations)
		snap.BackendP95Ms = percentile(backend.durations, 95)
	}
	return snap
}

// percentile returns the p-th percentile from a sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (p / 100) * float64(len(sorted)-1)
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))
	if lower == upper || upper >= len(sorted) {
		return sorted[lower]
	}
	frac := idx - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

// topByAvg returns the top n paths by average duration, slowest first.
func topByAvg(stats map[string]*PathStat, n int) []PathStat {
	list := make([]PathStat, 0, len(stats))
	for _, s := range stats {
		s.AvgMs = s.TotalMs / float64(s.Count)
		list = append(list, *s)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].AvgMs == list[j].AvgMs {
			return list[i].Path < list[j].Path
		}
		return list[i].AvgMs > list[j].AvgMs
	})
	if len(list) > n {
		list = list[:n]
	}
	return list
}
