package gallery

import "time"

// DefaultCopyFeedback is how long the "Copied!" state lasts
const DefaultCopyFeedback = 2 * time.Second

// CopyState is the copy-link feedback state
type CopyState int

const (
	CopyIdle CopyState = iota
	CopyCopied
)

func (s CopyState) String() string {
	if s == CopyCopied {
		return "copied"
	}
	return "idle"
}

// CopyFeedback tracks the idle -> copied -> idle cycle of the copy button.
//
// Every Copy hands out a token. The caller schedules Expire(token) after
// Delay; only the most recent token resets the state, so copying again
// restarts the delay.
type CopyFeedback struct {
	state CopyState
	token uint64
	delay time.Duration
}

// NewCopyFeedback returns an idle tracker. A non-positive delay uses
// DefaultCopyFeedback.
func NewCopyFeedback(delay time.Duration) CopyFeedback {
	if delay <= 0 {
		delay = DefaultCopyFeedback
	}
	return CopyFeedback{delay: delay}
}

// Copy enters the copied state and returns the token for its expiry
func (c *CopyFeedback) Copy() uint64 {
	c.token++
	c.state = CopyCopied
	return c.token
}

// Expire returns to idle if token is the latest one handed out.
// It reports whether the state changed.
func (c *CopyFeedback) Expire(token uint64) bool {
	if token != c.token || c.state == CopyIdle {
		return false
	}
	c.state = CopyIdle
	return true
}

// State returns the current state
func (c CopyFeedback) State() CopyState { return c.state }

// Copied reports whether feedback should be shown
func (c CopyFeedback) Copied() bool { return c.state == CopyCopied }

// Delay returns the feedback duration
func (c CopyFeedback) Delay() time.Duration {
	if c.delay <= 0 {
		return DefaultCopyFeedback
	}
	return c.delay
}
