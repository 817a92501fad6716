package service

import (
	"fmt"
	"strings"
	"sync"

	"fixbridge/internal/application/port/output"
	"fixbridge/internal/domain/entity"
)

var _ output.SelectionSource = (*SelectionModel)(nil)

// SelectionModel is the ordered set of elements a controlling UI has selected.
type SelectionModel struct {
	mu       sync.RWMutex
	items    []entity.SelectionItem
	onChange map[int]func()
	nextID   int
}

func NewSelectionModel() *SelectionModel {
	return &SelectionModel{onChange: map[int]func(){}}
}

// Set replaces the selection. Duplicate ids keep their first position.
func (s *SelectionModel) Set(items ...entity.SelectionItem) {
	seen := make(map[string]bool, len(items))
	next := make([]entity.SelectionItem, 0, len(items))
	for _, it := range items {
		if seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		next = append(next, it)
	}

	s.mu.Lock()
	s.items = next
	listeners := make([]func(), 0, len(s.onChange))
	for _, fn := range s.onChange {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

func (s *SelectionModel) Clear() {
	s.Set()
}

func (s *SelectionModel) Snapshot() []entity.SelectionItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.SelectionItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *SelectionModel) HasSelection() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items) > 0
}

// OnChange registers fn to run after every Set. The returned func removes it.
func (s *SelectionModel) OnChange(fn func()) (remove func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.onChange[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.onChange, id)
	}
}

// SelectionItemFor maps a captured page element onto a selection entry.
func SelectionItemFor(c entity.CapturedElement) entity.SelectionItem {
	tag := strings.ToLower(c.Element.TagName)

	name := tag
	if c.Element.ID != "" {
		name += "#" + c.Element.ID
	}
	for _, cls := range c.Element.ClassList {
		name += "." + cls
	}

	id := c.Element.ID
	if id == "" {
		id = fmt.Sprintf("%s@%.0f,%.0f", tag, c.Position.X, c.Position.Y)
	}

	return entity.SelectionItem{ID: id, Name: name, Type: tag}
}
