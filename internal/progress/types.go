package progress

import "time"

// EventType represents the type of progress event
type EventType int

const (
	EventScanStart EventType = iota
	EventScanComplete
	EventEnterDirectory
	EventFileClassified
	EventSkipped
	EventInfo
)

// Event represents something that happened during scanning
type Event struct {
	Type      EventType
	Path      string
	Language  string
	Stage     string
	Info      string
	Reason    string
	FileCount int
	DirCount  int
	Duration  time.Duration
}

// Reporter is the interface the scanner uses to report events
type Reporter interface {
	Report(event Event)
}

// Handler processes events and produces output
type Handler interface {
	Handle(event Event)
}
