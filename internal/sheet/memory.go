package sheet

import (
	"context"
	"fmt"
	"sync"
)

// Memory is an in-process Store used by tests and the smoke tooling. It keeps
// the same row-numbering contract as the Postgres store.
type Memory struct {
	mu     sync.Mutex
	sheets map[string]*memSheet
}

type memSheet struct {
	rows       map[int64][]any
	nextRow    int64
	frozenRows int
	rowHeights map[int64]int
	colWidths  map[int]int
}

func NewMemory() *Memory {
	return &Memory{sheets: make(map[string]*memSheet)}
}

func (m *Memory) sheet(name string) *memSheet {
	s, ok := m.sheets[name]
	if !ok {
		s = &memSheet{
			rows:       make(map[int64][]any),
			nextRow:    1,
			rowHeights: make(map[int64]int),
			colWidths:  make(map[int]int),
		}
		m.sheets[name] = s
	}
	return s
}

func (m *Memory) EnsureSheet(ctx context.Context, name string, headers []string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.sheet(name)
	if len(s.rows) > 0 {
		return false, nil
	}
	cells := make([]any, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	s.rows[1] = cells
	s.nextRow = 2
	s.frozenRows = 1
	return true, nil
}

func (m *Memory) AppendRow(ctx context.Context, name string, cells []any) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sheets[name]
	if !ok {
		return 0, fmt.Errorf("sheet %q does not exist", name)
	}
	row := s.nextRow
	s.rows[row] = append([]any(nil), cells...)
	s.nextRow++
	return row, nil
}

func (m *Memory) SetCell(ctx context.Context, name string, row int64, col int, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sheets[name]
	if !ok {
		return fmt.Errorf("sheet %q does not exist", name)
	}
	cells, ok := s.rows[row]
	if !ok || col < 1 || col > len(cells) {
		return fmt.Errorf("sheet %q has no cell (%d,%d)", name, row, col)
	}
	cells[col-1] = value
	return nil
}

func (m *Memory) SetRowHeight(ctx context.Context, name string, row int64, pixels int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sheet(name).rowHeights[row] = pixels
	return nil
}

func (m *Memory) SetColumnWidth(ctx context.Context, name string, col int, pixels int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sheet(name).colWidths[col] = pixels
	return nil
}

func (m *Memory) Stats(ctx context.Context, name string) (Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := Stats{Name: name}
	s, ok := m.sheets[name]
	if !ok {
		return st, nil
	}
	st.Exists = true
	st.RowCount = int64(len(s.rows))
	return st, nil
}

func (m *Memory) ClearData(ctx context.Context, name string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sheets[name]
	if !ok {
		return 0, fmt.Errorf("sheet %q does not exist", name)
	}
	var n int64
	for row := range s.rows {
		if row > 1 {
			delete(s.rows, row)
			n++
		}
	}
	return n, nil
}

// Row returns a copy of one row's cells, for assertions in tests.
func (m *Memory) Row(name string, row int64) ([]any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sheets[name]
	if !ok {
		return nil, false
	}
	cells, ok := s.rows[row]
	if !ok {
		return nil, false
	}
	return append([]any(nil), cells...), true
}

// RowHeight reports the recorded presentation height for a row.
func (m *Memory) RowHeight(name string, row int64) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sheets[name]
	if !ok {
		return 0, false
	}
	px, ok := s.rowHeights[row]
	return px, ok
}
