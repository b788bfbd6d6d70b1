package testhelpers

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"sheetmart/internal/sheets"
)

// Store operations, used for failure injection and call inspection.
const (
	OpGet    = "get"
	OpAppend = "append"
	OpUpdate = "update"
	OpBatch  = "batch"
	OpDelete = "delete"
	OpTabs   = "tabs"
)

// Call is one recorded store invocation.
type Call struct {
	Op      string
	SheetID string
	Range   string
	Rows    [][]string
}

type memTab struct {
	id    int64
	title string
	rows  [][]string
}

type failure struct {
	op      string
	sheetID string
	tab     string
	err     error
}

// MemStore is an in-memory sheets.TabularStore.
type MemStore struct {
	mu       sync.Mutex
	books    map[string][]*memTab
	nextID   int64
	failures []failure
	calls    []Call
}

func NewMemStore() *MemStore {
	return &MemStore{books: make(map[string][]*memTab), nextID: 100}
}

// Seed replaces a tab's content, creating the tab when needed.
func (s *MemStore) Seed(sheetID, tab string, rows [][]string) *MemStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.tab(sheetID, tab)
	if t == nil {
		t = s.addTab(sheetID, tab)
	}
	t.rows = copyRows(rows)
	return s
}

// FailOn makes op return err. Empty sheetID or tab match anything.
func (s *MemStore) FailOn(op, sheetID, tab string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, failure{op: op, sheetID: sheetID, tab: tab, err: err})
}

// Rows returns a copy of a tab's grid.
func (s *MemStore) Rows(sheetID, tab string) [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.tab(sheetID, tab)
	if t == nil {
		return nil
	}
	return copyRows(t.rows)
}

// Calls returns recorded calls of op, or all calls when op is empty.
func (s *MemStore) Calls(op string) []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Call
	for _, c := range s.calls {
		if op == "" || c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (s *MemStore) Get(_ context.Context, sheetID, rangeSpec string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tabName, start, end, err := sheets.ParseRange(rangeSpec)
	if err != nil {
		return nil, err
	}
	s.record(OpGet, sheetID, rangeSpec, nil)
	if err := s.failure(OpGet, sheetID, tabName); err != nil {
		return nil, err
	}
	t := s.tab(sheetID, tabName)
	if t == nil {
		return nil, fmt.Errorf("unable to parse range: %s", rangeSpec)
	}

	first, last := 0, len(t.rows)
	if start.Row > 0 {
		first = start.Row - 1
	}
	if end.Row > 0 && end.Row < last {
		last = end.Row
	}
	var out [][]string
	for i := first; i < last; i++ {
		row := t.rows[i]
		lo, hi := start.Col, end.Col+1
		if lo > len(row) {
			lo = len(row)
		}
		if hi > len(row) {
			hi = len(row)
		}
		out = append(out, append([]string(nil), row[lo:hi]...))
	}
	return out, nil
}

func (s *MemStore) Append(_ context.Context, sheetID, rangeSpec string, rows [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tabName, _, _, err := sheets.ParseRange(rangeSpec)
	if err != nil {
		return err
	}
	s.record(OpAppend, sheetID, rangeSpec, rows)
	if err := s.failure(OpAppend, sheetID, tabName); err != nil {
		return err
	}
	t := s.tab(sheetID, tabName)
	if t == nil {
		return fmt.Errorf("unable to parse range: %s", rangeSpec)
	}
	t.rows = append(t.rows, copyRows(rows)...)
	return nil
}

func (s *MemStore) Update(_ context.Context, sheetID, rangeSpec string, rows [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tabName, start, _, err := sheets.ParseRange(rangeSpec)
	if err != nil {
		return err
	}
	s.record(OpUpdate, sheetID, rangeSpec, rows)
	if err := s.failure(OpUpdate, sheetID, tabName); err != nil {
		return err
	}
	t := s.tab(sheetID, tabName)
	if t == nil {
		return fmt.Errorf("unable to parse range: %s", rangeSpec)
	}

	first := start.Row - 1
	if first < 0 {
		first = 0
	}
	for i, row := range rows {
		idx := first + i
		for len(t.rows) <= idx {
			t.rows = append(t.rows, nil)
		}
		target := t.rows[idx]
		for len(target) < start.Col+len(row) {
			target = append(target, "")
		}
		copy(target[start.Col:], row)
		t.rows[idx] = target
	}
	return nil
}

func (s *MemStore) BatchStructuralUpdate(_ context.Context, sheetID string, ops []sheets.StructuralOp) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(OpBatch, sheetID, "", nil)
	if err := s.failure(OpBatch, sheetID, ""); err != nil {
		return err
	}
	for _, op := range ops {
		if op.Kind != sheets.OpAddTab {
			return fmt.Errorf("unsupported op %q", op.Kind)
		}
		if s.tab(sheetID, op.Title) != nil {
			return fmt.Errorf("a sheet with the name %q already exists", op.Title)
		}
		s.addTab(sheetID, op.Title)
	}
	return nil
}

func (s *MemStore) DeleteRows(_ context.Context, sheetID string, tabID int64, rowIndices []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var t *memTab
	for _, candidate := range s.books[sheetID] {
		if candidate.id == tabID {
			t = candidate
		}
	}
	if t == nil {
		return fmt.Errorf("no tab with id %d", tabID)
	}
	s.record(OpDelete, sheetID, t.title, nil)
	if err := s.failure(OpDelete, sheetID, t.title); err != nil {
		return err
	}

	indices := append([]int(nil), rowIndices...)
	sort.Sort(sort.Reverse(sort.IntSlice(indices)))
	for _, idx := range indices {
		if idx >= 0 && idx < len(t.rows) {
			t.rows = append(t.rows[:idx], t.rows[idx+1:]...)
		}
	}
	return nil
}

func (s *MemStore) Tabs(_ context.Context, sheetID string) ([]sheets.Tab, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(OpTabs, sheetID, "", nil)
	if err := s.failure(OpTabs, sheetID, ""); err != nil {
		return nil, err
	}
	tabs := make([]sheets.Tab, 0, len(s.books[sheetID]))
	for _, t := range s.books[sheetID] {
		tabs = append(tabs, sheets.Tab{ID: t.id, Title: t.title})
	}
	return tabs, nil
}

func (s *MemStore) tab(sheetID, title string) *memTab {
	for _, t := range s.books[sheetID] {
		if strings.EqualFold(t.title, title) {
			return t
		}
	}
	return nil
}

func (s *MemStore) addTab(sheetID, title string) *memTab {
	s.nextID++
	t := &memTab{id: s.nextID, title: title}
	s.books[sheetID] = append(s.books[sheetID], t)
	return t
}

func (s *MemStore) record(op, sheetID, rangeSpec string, rows [][]string) {
	s.calls = append(s.calls, Call{Op: op, SheetID: sheetID, Range: rangeSpec, Rows: copyRows(rows)})
}

func (s *MemStore) failure(op, sheetID, tab string) error {
	for _, f := range s.failures {
		if f.op != op {
			continue
		}
		if f.sheetID != "" && f.sheetID != sheetID {
			continue
		}
		if f.tab != "" && !strings.EqualFold(f.tab, tab) {
			continue
		}
		return f.err
	}
	return nil
}

func copyRows(rows [][]string) [][]string {
	if rows == nil {
		return nil
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}

var _ sheets.TabularStore = (*MemStore)(nil)
