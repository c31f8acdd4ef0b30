package vexpool

// Status is the explicit result code a task may report, as opposed to a
// raised fault. StatusSuccess is the zero value.
type Status uint8

const (
	StatusSuccess Status = iota
	StatusInvalidArgument
	StatusOutOfRange
	StatusBuildError
	StatusSearchError
	StatusInternalError
)

// String returns the diagnostic name of the status.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusInvalidArgument:
		return "invalid_argument"
	case StatusOutOfRange:
		return "out_of_range"
	case StatusBuildError:
		return "build_error"
	case StatusSearchError:
		return "search_error"
	case StatusInternalError:
		return "internal_error"
	default:
		return "unknown"
	}
}
