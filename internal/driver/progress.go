package driver

// Status is the state of a unit within a check run.
type Status uint8

const (
	StatusQueued Status = iota
	StatusChecking
	StatusDone
	StatusCached
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusChecking:
		return "checking"
	case StatusDone:
		return "done"
	case StatusCached:
		return "cached"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Finished reports whether no further events follow s for the unit.
func (s Status) Finished() bool {
	return s == StatusDone || s == StatusCached || s == StatusError
}

// Event reports a unit changing status.
type Event struct {
	Path   string
	Status Status
}

// ProgressSink receives events from concurrent workers; implementations must
// be safe for concurrent use.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events to a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(ev Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- ev
}

func emit(sink ProgressSink, path string, status Status) {
	if sink != nil {
		sink.OnEvent(Event{Path: path, Status: status})
	}
}
