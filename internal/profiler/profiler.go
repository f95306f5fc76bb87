// Package profiler provides a caller-owned lap timer for coarse stage
// timing of a solve. There is deliberately no package-level instance:
// each run owns its profiler and passes it where needed.
package profiler

import (
	"fmt"
	"io"
	"time"
)

type lap struct {
	name    string
	elapsed time.Duration
}

type Profiler struct {
	last time.Time
	laps []lap
}

// New starts a profiler with its clock at now. A nil *Profiler is valid
// everywhere and records nothing.
func New() *Profiler {
	return &Profiler{last: time.Now()}
}

// Lap records the time since the previous lap (or since New) under the
// given stage name.
func (p *Profiler) Lap(name string) time.Duration {
	if p == nil {
		return 0
	}
	now := time.Now()
	d := now.Sub(p.last)
	p.last = now
	p.laps = append(p.laps, lap{name: name, elapsed: d})
	return d
}

// Total returns the sum of recorded laps.
func (p *Profiler) Total() time.Duration {
	if p == nil {
		return 0
	}
	var t time.Duration
	for _, l := range p.laps {
		t += l.elapsed
	}
	return t
}

// Laps returns recorded stage names in order.
func (p *Profiler) Laps() []string {
	if p == nil {
		return nil
	}
	names := make([]string, len(p.laps))
	for i, l := range p.laps {
		names[i] = l.name
	}
	return names
}

// Elapsed returns the recorded duration of a named stage.
func (p *Profiler) Elapsed(name string) (time.Duration, bool) {
	if p == nil {
		return 0, false
	}
	for _, l := range p.laps {
		if l.name == name {
			return l.elapsed, true
		}
	}
	return 0, false
}

// Report writes one line per lap plus a total.
func (p *Profiler) Report(w io.Writer) {
	if p == nil {
		return
	}
	for _, l := range p.laps {
		fmt.Fprintf(w, "%-24s %v\n", l.name, l.elapsed.Round(time.Microsecond))
	}
	fmt.Fprintf(w, "%-24s %v\n", "total", p.Total().Round(time.Microsecond))
}
