package store

import (
	"context"
	"sync"
)

// Memory is an in-process Tabular used by tests and by STORE_DRIVER=memory.
type Memory struct {
	mu     sync.Mutex
	tables map[string][]Row
}

func NewMemory() *Memory {
	return &Memory{tables: map[string][]Row{}}
}

func (m *Memory) AppendRow(_ context.Context, table string, row Row) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[table] = append(m.tables[table], Clone(row))
	return len(m.tables[table]) - 1, nil
}

func (m *Memory) ScanRows(_ context.Context, table string) ([]Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := m.tables[table]
	out := make([]Row, len(rows))
	for i, row := range rows {
		out[i] = Clone(row)
	}
	return out, nil
}

func (m *Memory) UpdateRow(_ context.Context, table string, rowIndex int, row Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := m.tables[table]
	if rowIndex < 0 || rowIndex >= len(rows) {
		return ErrRowNotFound
	}
	rows[rowIndex] = Clone(row)
	return nil
}

func (m *Memory) DeleteRow(_ context.Context, table string, rowIndex int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := m.tables[table]
	if rowIndex < 0 || rowIndex >= len(rows) {
		return ErrRowNotFound
	}
	m.tables[table] = append(rows[:rowIndex], rows[rowIndex+1:]...)
	return nil
}
