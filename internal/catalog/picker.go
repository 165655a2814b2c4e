package catalog

// Action is what a toggle asks the owner of the workout log to do.
type Action int

const (
	Add Action = iota + 1
	Remove
)

func (a Action) String() string {
	if a == Remove {
		return "remove"
	}
	return "add"
}

type Event struct {
	Action   Action
	Exercise string
}

// Picker is the two-pane exercise chooser: first a muscle group, then the
// group's exercises with a selection mark. The selection mirrors the names
// already logged for the selected day and is re-seeded with Reset.
type Picker struct {
	open     bool
	group    Group
	selected map[string]struct{}
	emit     func(Event)
}

// NewPicker returns a closed picker that reports toggles to emit.
func NewPicker(emit func(Event)) *Picker {
	if emit == nil {
		emit = func(Event) {}
	}
	return &Picker{selected: map[string]struct{}{}, emit: emit}
}

// Open shows the category pane with the selection seeded from names.
func (p *Picker) Open(names map[string]struct{}) {
	p.open = true
	p.group = ""
	p.Reset(names)
}

func (p *Picker) Close() {
	p.open = false
	p.group = ""
}

func (p *Picker) IsOpen() bool { return p.open }

// Reset replaces the selection, e.g. after the selected day changed.
func (p *Picker) Reset(names map[string]struct{}) {
	p.selected = make(map[string]struct{}, len(names))
	for n := range names {
		p.selected[n] = struct{}{}
	}
}

// Choose moves to the exercise pane of g.
func (p *Picker) Choose(g Group) bool {
	if _, ok := exercises[g]; !ok {
		return false
	}
	p.group = g
	return true
}

// Back returns to the category pane.
func (p *Picker) Back() { p.group = "" }

// Group is the group whose exercises are shown, empty on the category pane.
func (p *Picker) Group() Group { return p.group }

func (p *Picker) IsSelected(name string) bool {
	_, ok := p.selected[name]
	return ok
}

// Toggle flips the mark on name and emits Add or Remove accordingly.
func (p *Picker) Toggle(name string) Event {
	ev := Event{Action: Add, Exercise: name}
	if p.IsSelected(name) {
		delete(p.selected, name)
		ev.Action = Remove
	} else {
		p.selected[name] = struct{}{}
	}
	p.emit(ev)
	return ev
}
