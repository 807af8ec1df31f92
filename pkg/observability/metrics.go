package observability

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Metrics records application metrics.
type Metrics interface {
	Counter(name string, value int64, tags ...Tag)
	Gauge(name string, value float64, tags ...Tag)
	Timing(name string, duration time.Duration, tags ...Tag)
}

// Tag is a metric label.
type Tag struct {
	Key   string
	Value string
}

// T creates a new Tag.
func T(key, value string) Tag {
	return Tag{Key: key, Value: value}
}

// Metric names.
const (
	MetricAnalyzeTotal     = "taskrank.analyze.total"
	MetricAnalyzeDuration  = "taskrank.analyze.duration"
	MetricAnalyzeCacheHits = "taskrank.analyze.cache_hits"
	MetricAnalyzeErrors    = "taskrank.analyze.errors"
	MetricSuggestTotal     = "taskrank.suggest.total"
	MetricTasksScored      = "taskrank.tasks.scored"
	MetricCyclesFound      = "taskrank.cycles.found"
	MetricHTTPRequests     = "taskrank.http.requests"
	MetricHTTPDuration     = "taskrank.http.duration"
	MetricEventsPublished  = "taskrank.events.published"
	MetricEventsConsumed   = "taskrank.events.consumed"
	MetricCommandDuration  = "taskrank.command.duration"
)

// NoopMetrics discards everything.
type NoopMetrics struct{}

func (NoopMetrics) Counter(string, int64, ...Tag)          {}
func (NoopMetrics) Gauge(string, float64, ...Tag)          {}
func (NoopMetrics) Timing(string, time.Duration, ...Tag) {}

// InMemoryMetrics keeps metrics in process. It backs GET /metrics.
type InMemoryMetrics struct {
	mu      sync.RWMutex
	started time.Time
	counts  map[string]int64
	gauges  map[string]float64
	timings map[string]*timingStats
}

type timingStats struct {
	count int64
	total time.Duration
	max   time.Duration
}

// NewInMemoryMetrics creates an empty collector.
func NewInMemoryMetrics() *InMemoryMetrics {
	return &InMemoryMetrics{
		started: time.Now(),
		counts:  make(map[string]int64),
		gauges:  make(map[string]float64),
		timings: make(map[string]*timingStats),
	}
}

func (m *InMemoryMetrics) Counter(name string, value int64, tags ...Tag) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[formatKey(name, tags)] += value
}

func (m *InMemoryMetrics) Gauge(name string, value float64, tags ...Tag) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gauges[formatKey(name, tags)] = value
}

func (m *InMemoryMetrics) Timing(name string, duration time.Duration, tags ...Tag) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := formatKey(name, tags)
	stats, ok := m.timings[key]
	if !ok {
		stats = &timingStats{}
		m.timings[key] = stats
	}
	stats.count++
	stats.total += duration
	if duration > stats.max {
		stats.max = duration
	}
}

// GetCounter returns the current value of a counter.
func (m *InMemoryMetrics) GetCounter(name string, tags ...Tag) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.counts[formatKey(name, tags)]
}

// GetGauge returns the current value of a gauge.
func (m *InMemoryMetrics) GetGauge(name string, tags ...Tag) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gauges[formatKey(name, tags)]
}

// TimingCount returns how many durations were recorded under name.
func (m *InMemoryMetrics) TimingCount(name string, tags ...Tag) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if stats, ok := m.timings[formatKey(name, tags)]; ok {
		return stats.count
	}
	return 0
}

// TimingSummary is the aggregate of one timing series, in milliseconds.
type TimingSummary struct {
	Count  int64   `json:"count"`
	MeanMS float64 `json:"mean_ms"`
	MaxMS  float64 `json:"max_ms"`
}

// Snapshot is a point-in-time copy of every metric.
type Snapshot struct {
	UptimeSeconds float64                  `json:"uptime_seconds"`
	Counters      map[string]int64         `json:"counters"`
	Gauges        map[string]float64       `json:"gauges"`
	Timings       map[string]TimingSummary `json:"timings"`
}

// Snapshot copies the current metrics.
func (m *InMemoryMetrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := Snapshot{
		UptimeSeconds: time.Since(m.started).Seconds(),
		Counters:      make(map[string]int64, len(m.counts)),
		Gauges:        make(map[string]float64, len(m.gauges)),
		Timings:       make(map[string]TimingSummary, len(m.timings)),
	}
	for k, v := range m.counts {
		snap.Counters[k] = v
	}
	for k, v := range m.gauges {
		snap.Gauges[k] = v
	}
	for k, v := range m.timings {
		snap.Timings[k] = TimingSummary{
			Count:  v.count,
			MeanMS: millis(v.total) / float64(v.count),
			MaxMS:  millis(v.max),
		}
	}
	return snap
}

// Reset clears all recorded metrics.
func (m *InMemoryMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts = make(map[string]int64)
	m.gauges = make(map[string]float64)
	m.timings = make(map[string]*timingStats)
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// formatKey renders name{k=v,...} with tags sorted by key.
func formatKey(name string, tags []Tag) string {
	if len(tags) == 0 {
		return name
	}
	sorted := make([]Tag, len(tags))
	copy(sorted, tags)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })

	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('{')
	for i, t := range sorted {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(t.Key)
		b.WriteByte('=')
		b.WriteString(t.Value)
	}
	b.WriteByte('}')
	return b.String()
}
