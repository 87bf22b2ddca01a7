package gallery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCopyFeedbackReturnsToIdle(t *testing.T) {
	c := NewCopyFeedback(time.Second)
	assert.Equal(t, CopyIdle, c.State())

	token := c.Copy()
	assert.True(t, c.Copied())

	assert.True(t, c.Expire(token))
	assert.Equal(t, CopyIdle, c.State())
	assert.False(t, c.Expire(token), "second expiry is a no-op")
}

func TestCopyAgainRestartsDelay(t *testing.T) {
	c := NewCopyFeedback(time.Second)

	first := c.Copy()
	second := c.Copy()

	assert.False(t, c.Expire(first), "stale timer must not clear newer feedback")
	assert.True(t, c.Copied())

	assert.True(t, c.Expire(second))
	assert.False(t, c.Copied())
}

func TestCopyFeedbackDelay(t *testing.T) {
	assert.Equal(t, DefaultCopyFeedback, NewCopyFeedback(0).Delay())
	assert.Equal(t, 500*time.Millisecond, NewCopyFeedback(500*time.Millisecond).Delay())

	var zero CopyFeedback
	assert.Equal(t, DefaultCopyFeedback, zero.Delay())
	assert.Equal(t, "idle", zero.State().String())
}
