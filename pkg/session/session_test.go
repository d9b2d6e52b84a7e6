package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBareSession() *Session {
	return &Session{
		id:   "test",
		data: map[string]interface{}{},
		opts: DefaultOptions(),
	}
}

func TestFlashIsReadOnce(t *testing.T) {
	s := newBareSession()
	s.Flash("latest_order", map[string]interface{}{"id": float64(7)})

	v, ok := s.GetFlash("latest_order")
	assert.True(t, ok)
	assert.NotNil(t, v)

	_, ok = s.GetFlash("latest_order")
	assert.False(t, ok)
}

func TestGetUintCoercesJSONNumbers(t *testing.T) {
	s := newBareSession()

	// Values round-tripped through Redis come back as float64.
	s.Set("user_id", float64(42))
	n, ok := s.GetUint("user_id")
	assert.True(t, ok)
	assert.Equal(t, uint(42), n)

	s.Set("user_id", uint(7))
	n, ok = s.GetUint("user_id")
	assert.True(t, ok)
	assert.Equal(t, uint(7), n)

	_, ok = s.GetUint("absent")
	assert.False(t, ok)
}

func TestInvalidateClearsEverything(t *testing.T) {
	s := newBareSession()
	s.Set("user_id", uint(1))
	s.Flash("latest_order", "x")

	s.Invalidate()

	_, ok := s.Get("user_id")
	assert.False(t, ok)
	_, ok = s.GetFlash("latest_order")
	assert.False(t, ok)
	assert.True(t, s.changed)
}
