// Package store provides Store implementations.
package store

import (
	"context"
	"sync"

	"github.com/leap/balance-engine/engine"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu       sync.RWMutex
	schedule *engine.Schedule
	leave    []engine.LeaveRecord
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) SaveSchedule(_ context.Context, schedule *engine.Schedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedule = engine.NewSchedule(schedule.Hours())
	return nil
}

func (m *Memory) LoadSchedule(_ context.Context) (*engine.Schedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.schedule == nil {
		return engine.DefaultSchedule(), nil
	}
	return engine.NewSchedule(m.schedule.Hours()), nil
}

func (m *Memory) AddLeave(_ context.Context, records []engine.LeaveRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leave = append(m.leave, records...)
	return nil
}

func (m *Memory) RemoveLeave(_ context.Context, reason string, rng engine.DateRange) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ledger := engine.NewLedgerFromRecords(m.leave)
	removed := ledger.Remove(reason, rng)
	m.leave = ledger.Records()
	return removed, nil
}

func (m *Memory) ListLeave(_ context.Context) ([]engine.LeaveRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]engine.LeaveRecord, len(m.leave))
	copy(out, m.leave)
	return out, nil
}
