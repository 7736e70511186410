// Package metrics records timer activity.
package metrics

// Recorder receives timer activity. Implementations must be safe for concurrent use.
type Recorder interface {
	IncTick(phase string)
	IncTransition(from, to string)
	IncStoreFailure(op string)
	IncNotifyFailure()
	SetCycles(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncTick(string) {}
func (NoopRecorder) IncTransition(string, string) {}
func (NoopRecorder) IncStoreFailure(string) {}
func (NoopRecorder) IncNotifyFailure() {}
func (NoopRecorder) SetCycles(int) {}
