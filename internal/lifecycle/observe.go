package lifecycle

import (
	domain "github.com/oshokin/wakey-wakey/internal/domain/alarm"
)

// Snapshot is the observable state published to subscribers.
type Snapshot struct {
	Alarms  []domain.Alarm
	Trigger domain.TriggerState
}

// Subscribe returns a channel that receives the current snapshot immediately
// and a fresh one after every change. Slow readers only see the latest
// snapshot. The returned function unsubscribes and closes the channel.
func (m *Manager) Subscribe() (<-chan Snapshot, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan Snapshot, 1)
	id := m.nextSubscriber
	m.nextSubscriber++
	m.subscribers[id] = ch

	ch <- m.snapshot()

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		if _, ok := m.subscribers[id]; ok {
			delete(m.subscribers, id)
			close(ch)
		}
	}

	return ch, cancel
}

// snapshot copies the observable state. Callers must hold mu.
func (m *Manager) snapshot() Snapshot {
	return Snapshot{
		Alarms:  m.cloneAlarms(),
		Trigger: *m.trigger.Clone(),
	}
}

// notify publishes a snapshot without blocking, replacing any unread one.
// Callers must hold mu.
func (m *Manager) notify() {
	if len(m.subscribers) == 0 {
		return
	}

	snap := m.snapshot()

	for _, ch := range m.subscribers {
		select {
		case ch <- snap:
			continue
		default:
		}

		select {
		case <-ch:
		default:
		}

		select {
		case ch <- snap:
		default:
		}
	}
}
