package tui

import (
	"github.com/Sternrassler/postfeed/pkg/pagination"
)

// snapshotMsg carries a published coordinator snapshot.
type snapshotMsg pagination.Snapshot

// fetchDoneMsg reports how a fetch trigger settled.
type fetchDoneMsg struct {
	outcome pagination.Outcome
}

// detailDoneMsg reports a detail toggle for item id.
type detailDoneMsg struct {
	id  int64
	err error
}

// todoDoneMsg reports a todo change.
type todoDoneMsg struct {
	err error
}

// notificationMsg carries a notification for the status line.
type notificationMsg string
