package sink

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// MemorySink keeps parts in memory. It is meant for tests and dry runs.
// Delay slows every write; FailAt makes the write of that part index fail.
type MemorySink struct {
	Delay  time.Duration
	FailAt int

	mu     sync.Mutex
	chunks map[string][]byte
	order  []string
	card   *Card
}

func (m *MemorySink) Name() string { return "Memory" }

func (m *MemorySink) WriteChunk(ctx context.Context, part Part) (string, error) {
	if err := m.wait(ctx); err != nil {
		return "", err
	}
	if m.FailAt > 0 && part.Index == m.FailAt {
		return "", errors.Errorf("memory: simulated failure writing %s", part.Name())
	}

	data, err := marshalRecords(part)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.chunks == nil {
		m.chunks = make(map[string][]byte)
	}
	if _, ok := m.chunks[part.Name()]; !ok {
		m.order = append(m.order, part.Name())
	}
	m.chunks[part.Name()] = data
	return part.Name(), nil
}

func (m *MemorySink) WriteCard(ctx context.Context, card Card) (string, error) {
	if err := m.wait(ctx); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.card = &card
	return CardName, nil
}

// Chunk returns the JSON stored under name.
func (m *MemorySink) Chunk(name string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.chunks[name]
	return b, ok
}

// Names returns the stored part names in write order.
func (m *MemorySink) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.order...)
}

// Card returns the last card written, if any.
func (m *MemorySink) Card() (Card, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.card == nil {
		return Card{}, false
	}
	return *m.card, true
}

func (m *MemorySink) wait(ctx context.Context) error {
	if m.Delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(m.Delay):
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "memory")
	}
}
