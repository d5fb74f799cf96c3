// Package feed defines the records exchanged between the remote post
// collection, the pagination coordinator and the rendering surfaces.
package feed

import "fmt"

// Item is a single post returned by the remote collection.
// Items are immutable once fetched.
type Item struct {
	// ID is unique and stable, assigned by the remote source.
	ID int64 `json:"id"`

	// UserID is the author id reported by the remote source (0 if absent).
	UserID int64 `json:"userId,omitempty"`

	Title string `json:"title"`
	Body  string `json:"body"`
}

// String returns the one-line list representation "<id> <title>".
func (i Item) String() string {
	return fmt.Sprintf("%d %s", i.ID, i.Title)
}
