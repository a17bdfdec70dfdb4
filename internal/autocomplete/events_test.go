package autocomplete

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcherOrderAndRemoval(t *testing.T) {
	d := NewDispatcher()
	var got []string
	rmA := d.On(Click, func(Event) { got = append(got, "a") })
	d.On(Click, func(Event) { got = append(got, "b") })
	d.On(Input, func(Event) { got = append(got, "input") })

	d.Dispatch(Event{Kind: Click})
	assert.Equal(t, []string{"a", "b"}, got)

	rmA()
	rmA()
	got = nil
	d.Dispatch(Event{Kind: Click})
	assert.Equal(t, []string{"b"}, got)
	assert.Equal(t, 1, d.Count(Click))
	assert.Equal(t, 1, d.Count(Input))
}

func TestDispatcherHandlerMayRemoveItself(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	var rm func()
	rm = d.On(KeyUp, func(Event) {
		calls++
		rm()
	})
	d.Dispatch(Event{Kind: KeyUp})
	d.Dispatch(Event{Kind: KeyUp})
	assert.Equal(t, 1, calls)
	assert.Zero(t, d.Count(KeyUp))
}
