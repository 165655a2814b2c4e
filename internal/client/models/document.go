package models

import "path"

// Document is a JSON object stored remotely under a slash-separated path,
// e.g. users/{uid}/workouts/2024-06-10.
type Document struct {
	Path string
	Data []byte
}

// ID is the last path segment.
func (d Document) ID() string {
	return path.Base(d.Path)
}
