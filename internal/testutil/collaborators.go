package testutil

import (
	"context"
	"sync"

	"github.com/Veraticus/payday/internal/service"
)

// Notification is one message captured by RecordingNotifier.
type Notification struct {
	Level   service.Level
	Message string
}

// RecordingNotifier keeps every notification for later assertions.
type RecordingNotifier struct {
	notifications []Notification
	mu            sync.Mutex
}

// Notify implements service.Notifier.
func (n *RecordingNotifier) Notify(level service.Level, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = append(n.notifications, Notification{Level: level, Message: message})
}

// All returns a copy of the captured notifications.
func (n *RecordingNotifier) All() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.notifications...)
}

// Count returns how many notifications were sent at level.
func (n *RecordingNotifier) Count(level service.Level) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	count := 0
	for _, note := range n.notifications {
		if note.Level == level {
			count++
		}
	}
	return count
}

// Last returns the most recent notification, or the zero value.
func (n *RecordingNotifier) Last() Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.notifications) == 0 {
		return Notification{}
	}
	return n.notifications[len(n.notifications)-1]
}

// Reset forgets captured notifications.
func (n *RecordingNotifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = nil
}

// StubConfirmer answers confirmation prompts with a fixed reply.
type StubConfirmer struct {
	Err     error
	prompts []string
	Answer  bool
	mu      sync.Mutex
}

// Confirm implements service.Confirmer.
func (c *StubConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prompts = append(c.prompts, prompt)
	if c.Err != nil {
		return false, c.Err
	}
	return c.Answer, nil
}

// Prompts returns every prompt that was asked.
func (c *StubConfirmer) Prompts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.prompts...)
}
