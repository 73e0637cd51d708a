package observable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubjectReplaysAndNotifies(t *testing.T) {
	s := NewSubject("")

	var got []string
	unsub := s.Subscribe(func(v string) { got = append(got, v) })

	s.Set("a")
	s.Update(func(v string) string { return v + "b" })

	assert.Equal(t, []string{"", "a", "ab"}, got)
	assert.Equal(t, "ab", s.Value())

	unsub()
	unsub()
	s.Set("c")
	assert.Equal(t, []string{"", "a", "ab"}, got)
}

func TestSubjectNotifiesInSubscriptionOrder(t *testing.T) {
	s := NewSubject(0)

	var order []string
	s.Subscribe(func(int) { order = append(order, "first") })
	unsub := s.Subscribe(func(int) { order = append(order, "second") })
	s.Subscribe(func(int) { order = append(order, "third") })
	order = nil

	unsub()
	s.Set(1)
	assert.Equal(t, []string{"first", "third"}, order)
}

func TestSubjectListenerMayReadValue(t *testing.T) {
	s := NewSubject(1)
	var seen int
	s.Subscribe(func(int) { seen = s.Value() })
	s.Set(7)
	assert.Equal(t, 7, seen)
}
