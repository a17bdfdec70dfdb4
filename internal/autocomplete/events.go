package autocomplete

// EventKind names the field events the controller listens to.
type EventKind int

const (
	// KeyUp fires after a key was handled by the field. Key holds the key
	// name as bubbletea spells it ("left", "home", "ctrl+a", ...).
	KeyUp EventKind = iota
	// Click fires after a pointer press moved the caret.
	Click
	// Input fires after the field value changed.
	Input
	// Highlight fires when the highlighted suggestion changes. Text holds
	// the highlighted candidate.
	Highlight
	// Select fires when the user picks a suggestion. Text holds it.
	Select
)

func (k EventKind) String() string {
	switch k {
	case KeyUp:
		return "keyup"
	case Click:
		return "click"
	case Input:
		return "input"
	case Highlight:
		return "highlight"
	case Select:
		return "select"
	default:
		return "unknown"
	}
}

type Event struct {
	Kind EventKind
	Key  string
	Text string
}

type Handler func(Event)

type entry struct {
	fn Handler
}

// Dispatcher is a per-field listener registry. It is not safe for
// concurrent use; the UI loop owns it.
type Dispatcher struct {
	handlers map[EventKind][]*entry
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: map[EventKind][]*entry{}}
}

// On registers fn for kind and returns a func that removes it again.
func (d *Dispatcher) On(kind EventKind, fn Handler) (remove func()) {
	e := &entry{fn: fn}
	d.handlers[kind] = append(d.handlers[kind], e)
	return func() {
		list := d.handlers[kind]
		for i, x := range list {
			if x == e {
				d.handlers[kind] = append(list[:i:i], list[i+1:]...)
				break
			}
		}
		if len(d.handlers[kind]) == 0 {
			delete(d.handlers, kind)
		}
	}
}

// Dispatch runs the handlers registered for e.Kind in registration order.
func (d *Dispatcher) Dispatch(e Event) {
	list := append([]*entry(nil), d.handlers[e.Kind]...)
	for _, x := range list {
		x.fn(e)
	}
}

// Count reports how many handlers are registered for kind.
func (d *Dispatcher) Count(kind EventKind) int { return len(d.handlers[kind]) }
