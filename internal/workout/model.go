// Package workout holds the per-day workout log: an ordered list of exercise
// entries for each day, each entry carrying the sets performed.
package workout

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrUnknownField    = errors.New("unknown set field")
)

// Field names a mutable attribute of a Set.
type Field string

const (
	FieldReps   Field = "reps"
	FieldWeight Field = "weight"
)

// Set is one performed set. Values are kept as typed by the user.
type Set struct {
	Reps   string `json:"reps"`
	Weight string `json:"weight"`
}

// Entry is one exercise performed on a day. ID is the identity; Name is
// only a label and may repeat within a day.
type Entry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Sets []Set  `json:"sets"`
}

func NewEntry(name string) Entry {
	return Entry{ID: uuid.NewString(), Name: name, Sets: []Set{}}
}

// Clone returns a copy that shares no memory with e.
func (e Entry) Clone() Entry {
	sets := make([]Set, len(e.Sets))
	copy(sets, e.Sets)
	return Entry{ID: e.ID, Name: e.Name, Sets: sets}
}
