package report

import "github.com/mrzor/approxclock/internal/timesync"

// Phase is a named interval stamped with the approximate clock.
type Phase struct {
	Name  string
	Start timesync.ApproxTime
	End   timesync.ApproxTime
}

// Recorder stamps phases with a cheap clock.
type Recorder struct {
	now    func() timesync.ApproxTime
	phases []Phase
}

// NewRecorder creates a recorder reading now for every stamp.
func NewRecorder(now func() timesync.ApproxTime) *Recorder {
	return &Recorder{now: now}
}

// Time runs fn and records it as a phase.
func (r *Recorder) Time(name string, fn func()) {
	start := r.now()
	fn()
	r.phases = append(r.phases, Phase{Name: name, Start: start, End: r.now()})
}

// Phases returns the recorded phases in order.
func (r *Recorder) Phases() []Phase {
	return append([]Phase(nil), r.phases...)
}
