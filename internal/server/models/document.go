package models

import (
	"path"
	"time"
)

// Document is a JSON object stored under a slash-separated path such as
// "users/{uid}/workouts/2024-06-10". Its collection is the parent path and
// its id is the last segment.
type Document struct {
	Path      string
	Data      []byte
	UpdatedAt time.Time
}

func (d Document) Collection() string { return path.Dir(d.Path) }

func (d Document) ID() string { return path.Base(d.Path) }
