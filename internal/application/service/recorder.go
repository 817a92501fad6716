package service

import (
	"context"
	"sync/atomic"

	"fixbridge/internal/application/port/input"
	"fixbridge/internal/application/port/output"
	"fixbridge/internal/domain/entity"
)

// PositionState owns the single last-position cell. One writer, many readers;
// consecutive reads may observe different values.
type PositionState struct {
	current atomic.Pointer[entity.Position]
}

func NewPositionState(seed entity.Position) *PositionState {
	s := &PositionState{}
	s.Store(seed)
	return s
}

func (s *PositionState) Load() entity.Position {
	return *s.current.Load()
}

func (s *PositionState) Store(pos entity.Position) {
	s.current.Store(&pos)
}

var _ input.InteractionRecorder = (*Recorder)(nil)

type Recorder struct {
	state  *PositionState
	store  output.PositionStore
	logger output.LoggerPort
}

// NewRecorder seeds state with the viewport centre. The store is only
// written, never read back: a new page starts from the centre. store may be nil.
func NewRecorder(state *PositionState, store output.PositionStore, viewport entity.Viewport, logger output.LoggerPort) *Recorder {
	if state == nil {
		state = NewPositionState(viewport.Center())
	} else {
		state.Store(viewport.Center())
	}

	return &Recorder{
		state:  state,
		store:  store,
		logger: logger.WithField("component", "recorder"),
	}
}

// Reset moves the position back to the viewport centre and persists it.
// Called when the observed page opens.
func (r *Recorder) Reset(viewport entity.Viewport) {
	pos := viewport.Center()
	r.state.Store(pos)
	r.persist(pos)
	r.logger.Debug("Position reset to viewport centre", "x", pos.X, "y", pos.Y)
}

func (r *Recorder) Record(ctx context.Context, ev entity.PointerEvent) bool {
	if !ev.IsContextMenu() {
		return false
	}

	pos := ev.Position()
	r.state.Store(pos)
	r.persist(pos)
	r.logger.Debug("Right-click position stored", "x", pos.X, "y", pos.Y)
	return true
}

// persist never fails the caller: a lost write is re-seeded by the next click.
func (r *Recorder) persist(pos entity.Position) {
	if r.store == nil {
		r.logger.Warn("Position not persisted", "error", entity.NewHostUnavailable("recorder.persist"))
		return
	}
	if err := r.store.Save(pos); err != nil {
		r.logger.Warn("Position not persisted", "error", entity.NewStorageWriteFailure("recorder.persist", err))
	}
}

func (r *Recorder) Current() entity.Position {
	return r.state.Load()
}
