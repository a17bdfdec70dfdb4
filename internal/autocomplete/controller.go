// Package autocomplete binds the tokenizer and matcher to an editable field.
//
// A Controller watches caret movement, clicks and text changes on the field,
// keeps the token under the caret and the candidates matching it up to date,
// and on selection rewrites exactly that token and moves the caret past it.
package autocomplete

import (
	"context"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"

	"class-autocomplete/internal/match"
	"class-autocomplete/internal/token"
)

// State is the controller's position in its suggestion cycle.
type State int

const (
	Idle State = iota
	Evaluating
	Suggesting
	Committing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Evaluating:
		return "evaluating"
	case Suggesting:
		return "suggesting"
	case Committing:
		return "committing"
	default:
		return "unknown"
	}
}

// Field is the editable host input. *textinput.Model satisfies it.
type Field interface {
	Value() string
	Position() int
	SetCursor(pos int)
}

// Loader resolves the candidate list without failing. *suggest.Cache
// satisfies it.
type Loader interface {
	Load(ctx context.Context) []string
}

// KeyMap lists the keys that move the caret without editing. The field does
// not know it is token aware, so these keys alone must re-trigger matching.
type KeyMap struct {
	Caret key.Binding
}

// DefaultKeyMap binds the arrow, home/end, page and readline motion keys.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Caret: key.NewBinding(key.WithKeys(
			"left", "right", "home", "end", "pgup", "pgdown",
			"ctrl+a", "ctrl+e", "ctrl+b", "ctrl+f",
			"alt+left", "alt+right", "alt+b", "alt+f",
		)),
	}
}

// Option configures a Controller.
type Option func(*Controller)

// WithMatcher replaces the default case-insensitive matcher.
func WithMatcher(m match.Matcher) Option { return func(c *Controller) { c.matcher = m } }

// WithMaxItems caps the rendered suggestions; n <= 0 removes the cap.
func WithMaxItems(n int) Option { return func(c *Controller) { c.maxItems = n } }

// WithMinChars keeps the list closed while the field value is shorter
// than n characters.
func WithMinChars(n int) Option { return func(c *Controller) { c.minChars = n } }

// WithScroll installs the hook that brings a rendered entry into view.
func WithScroll(fn func(index int)) Option { return func(c *Controller) { c.scroll = fn } }

// WithKeyMap replaces the keys that re-trigger matching on key up.
func WithKeyMap(km KeyMap) Option { return func(c *Controller) { c.keys = km } }

// WithLogger sets the debug logger. A nil logf keeps the no-op default.
func WithLogger(logf func(string, ...any)) Option {
	return func(c *Controller) {
		if logf != nil {
			c.logf = logf
		}
	}
}

const defaultMaxItems = 10

// Controller runs the suggestion cycle for one mounted field. It is not
// safe for concurrent use; drive it from the host's event loop.
type Controller struct {
	field    Field
	onChange func(string)

	matcher  match.Matcher
	maxItems int
	minChars int
	keys     KeyMap
	scroll   func(int)
	logf     func(string, ...any)

	candidates []string
	state      State
	tok        token.Token
	matches    []string
	closed     bool
}

// New creates a controller for field. onChange receives every value the
// controller writes; the host must apply it to the field before returning.
func New(field Field, onChange func(string), opts ...Option) *Controller {
	c := &Controller{
		field:    field,
		onChange: onChange,
		maxItems: defaultMaxItems,
		keys:     DefaultKeyMap(),
		logf:     func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State reports where the controller is in its cycle.
func (c *Controller) State() State { return c.state }

// Token is the token under the caret as of the last evaluation.
func (c *Controller) Token() token.Token { return c.tok }

// Candidates returns the resolved candidate list.
func (c *Controller) Candidates() []string { return append([]string(nil), c.candidates...) }

// Matches returns every candidate matching the active token.
func (c *Controller) Matches() []string { return append([]string(nil), c.matches...) }

// Visible returns the matches that are rendered, capped by the max items
// setting.
func (c *Controller) Visible() []string {
	v := c.matches
	if c.maxItems > 0 && len(v) > c.maxItems {
		v = v[:c.maxItems]
	}
	return append([]string(nil), v...)
}

// Marked returns the rendered entries with the active token marked.
func (c *Controller) Marked() []match.Marked {
	vis := c.Visible()
	out := make([]match.Marked, len(vis))
	for i, s := range vis {
		out[i] = c.matcher.Mark(s, c.tok.Text)
	}
	return out
}

// Closed reports whether the controller's binding was released.
func (c *Controller) Closed() bool { return c.closed }

// SetCandidates installs the resolved list. An empty list keeps the
// controller idle.
func (c *Controller) SetCandidates(list []string) {
	if c.closed {
		return
	}
	c.candidates = append([]string(nil), list...)
	if len(c.candidates) == 0 {
		c.state = Idle
		c.matches = nil
		return
	}
	c.Evaluate()
}

// Resolve performs the single load attempt for this mount.
func (c *Controller) Resolve(ctx context.Context, l Loader) {
	c.SetCandidates(l.Load(ctx))
}

// Evaluate recomputes the active token and the matching candidates.
func (c *Controller) Evaluate() State {
	if c.closed {
		return c.state
	}
	if len(c.candidates) == 0 {
		c.state = Idle
		c.matches = nil
		return c.state
	}
	c.state = Evaluating
	value := c.field.Value()
	c.tok = token.At(value, c.field.Position())
	if utf8.RuneCountInString(value) < c.minChars {
		c.matches = nil
	} else {
		c.matches = c.matcher.Select(c.candidates, c.tok.Text)
	}
	if len(c.matches) > 0 {
		c.state = Suggesting
	} else {
		c.state = Idle
	}
	return c.state
}

// Select commits candidate in place of the token under the caret. It
// reports false when no suggestions are showing.
func (c *Controller) Select(candidate string) bool {
	if c.closed || c.state != Suggesting {
		return false
	}
	c.state = Committing
	value := c.field.Value()
	tok := token.At(value, c.field.Position())
	next := token.Replace(value, tok, candidate)
	c.logf("commit %q over %q at %d", candidate, tok.Text, tok.Start)
	c.onChange(next)
	c.field.SetCursor(token.CaretAfter(next, candidate))
	c.Evaluate()
	return true
}

// Dismiss hides the suggestions until the next caret or text event.
func (c *Controller) Dismiss() {
	if c.state == Suggesting {
		c.state = Idle
		c.matches = nil
	}
}

// ScrollTo asks the renderer to bring the entry whose text equals
// candidate into view. Unknown candidates are ignored.
func (c *Controller) ScrollTo(candidate string) {
	if c.scroll == nil {
		return
	}
	for i, s := range c.Visible() {
		if s == candidate {
			c.scroll(i)
			return
		}
	}
}

func (c *Controller) caretMoved() {
	switch c.state {
	case Idle, Suggesting:
		c.Evaluate()
	}
}

// Binding is the set of listener registrations made by Bind. Releasing it
// unmounts the controller.
type Binding struct {
	ctrl    *Controller
	removes []func()
}

// Bind registers the controller's handlers on d.
func (c *Controller) Bind(d *Dispatcher) *Binding {
	b := &Binding{ctrl: c}
	b.removes = append(b.removes,
		d.On(KeyUp, func(e Event) {
			if key.Matches(keyName(e.Key), c.keys.Caret) {
				c.caretMoved()
			}
		}),
		d.On(Click, func(Event) { c.caretMoved() }),
		d.On(Input, func(Event) { c.Evaluate() }),
		d.On(Highlight, func(e Event) { c.ScrollTo(e.Text) }),
		d.On(Select, func(e Event) { c.Select(e.Text) }),
	)
	return b
}

// Release removes every handler and leaves the controller terminal. It is
// safe to call more than once.
func (b *Binding) Release() {
	if b == nil {
		return
	}
	for _, rm := range b.removes {
		rm()
	}
	b.removes = nil
	c := b.ctrl
	c.closed = true
	c.state = Idle
	c.matches = nil
}

type keyName string

func (k keyName) String() string { return string(k) }
