package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"fixbridge/internal/domain/entity"
	"fixbridge/internal/infrastructure/logger"
	"fixbridge/internal/infrastructure/storage"
)

var defaultViewport = entity.Viewport{Width: 1000, Height: 1000}

func rightClick(x, y float64) entity.PointerEvent {
	return entity.PointerEvent{Type: entity.PointerContextMenu, Button: entity.ButtonRight, ClientX: x, ClientY: y}
}

func TestRecorder_SeedsViewportCenter(t *testing.T) {
	rec := NewRecorder(nil, storage.NewMemorySlot[entity.Position](), defaultViewport, logger.NewNop())

	assert.Equal(t, entity.Position{X: 500, Y: 500}, rec.Current())
}

func TestRecorder_IgnoresPersistedPosition(t *testing.T) {
	store := storage.NewMemorySlot[entity.Position]()
	require.NoError(t, store.Save(entity.Position{X: 12, Y: 34}))

	rec := NewRecorder(NewPositionState(entity.Position{}), store, defaultViewport, logger.NewNop())

	assert.Equal(t, entity.Position{X: 500, Y: 500}, rec.Current())
	persisted, _, _ := store.Load()
	assert.Equal(t, entity.Position{X: 12, Y: 34}, persisted, "construction does not write")
}

func TestRecorder_ResetPersistsViewportCenter(t *testing.T) {
	store := storage.NewFileSlot[entity.Position](filepath.Join(t.TempDir(), "position.json"))
	require.NoError(t, store.Save(entity.Position{X: 7, Y: 9}))

	rec := NewRecorder(nil, store, defaultViewport, logger.NewNop())
	rec.Record(context.Background(), rightClick(40, 60))
	rec.Reset(entity.Viewport{Width: 800, Height: 600})

	assert.Equal(t, entity.Position{X: 400, Y: 300}, rec.Current())
	persisted, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entity.Position{X: 400, Y: 300}, persisted)
}

func TestRecorder_LastEventWins(t *testing.T) {
	tests := []struct {
		name   string
		events []entity.PointerEvent
		want   entity.Position
	}{
		{"single", []entity.PointerEvent{rightClick(1, 2)}, entity.Position{X: 1, Y: 2}},
		{"many", []entity.PointerEvent{rightClick(1, 2), rightClick(3, 4), rightClick(640, 480)}, entity.Position{X: 640, Y: 480}},
		{"non-qualifying ignored", []entity.PointerEvent{
			rightClick(10, 10),
			{Type: entity.PointerClick, Button: entity.ButtonLeft, ClientX: 99, ClientY: 99},
			{Type: entity.PointerMove, ClientX: 77, ClientY: 77},
		}, entity.Position{X: 10, Y: 10}},
		{"right button click qualifies", []entity.PointerEvent{
			{Type: entity.PointerClick, Button: entity.ButtonRight, ClientX: 5, ClientY: 6},
		}, entity.Position{X: 5, Y: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemorySlot[entity.Position]()
			rec := NewRecorder(nil, store, defaultViewport, logger.NewNop())

			for _, ev := range tt.events {
				rec.Record(context.Background(), ev)
			}

			assert.Equal(t, tt.want, rec.Current())
			stored, ok, _ := store.Load()
			assert.True(t, ok)
			assert.Equal(t, tt.want, stored)
		})
	}
}

func TestRecorder_RecordReportsQualification(t *testing.T) {
	rec := NewRecorder(nil, nil, defaultViewport, logger.NewNop())

	assert.True(t, rec.Record(context.Background(), rightClick(1, 1)))
	assert.False(t, rec.Record(context.Background(), entity.PointerEvent{Type: entity.PointerMove}))
}

func TestRecorder_CurrentIsSnapshot(t *testing.T) {
	rec := NewRecorder(nil, nil, defaultViewport, logger.NewNop())
	rec.Record(context.Background(), rightClick(1, 1))

	pos := rec.Current()
	pos.X = 999

	assert.Equal(t, 1.0, rec.Current().X)
}

func TestRecorder_StoreFailureIsLoggedNotSurfaced(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	store := storage.NewMemorySlot[entity.Position]()
	require.NoError(t, store.Save(entity.Position{X: 1, Y: 1}))

	rec := NewRecorder(nil, store, defaultViewport, logger.FromZap(zap.New(core)))
	store.SaveErr = errors.New("quota exceeded")

	assert.NotPanics(t, func() {
		rec.Record(context.Background(), rightClick(200, 300))
	})

	assert.Equal(t, entity.Position{X: 200, Y: 300}, rec.Current())
	persisted, _, _ := store.Load()
	assert.Equal(t, entity.Position{X: 1, Y: 1}, persisted, "persisted copy keeps prior value")

	warnings := logs.FilterMessage("Position not persisted").All()
	require.Len(t, warnings, 1)
	err, ok := warnings[0].ContextMap()["error"]
	require.True(t, ok)
	assert.Contains(t, err, string(entity.KindStorageWriteFailure))
}

func TestRecorder_NoStoreIsHostUnavailable(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	rec := NewRecorder(nil, nil, defaultViewport, logger.FromZap(zap.New(core)))

	rec.Record(context.Background(), rightClick(3, 4))

	assert.Equal(t, entity.Position{X: 3, Y: 4}, rec.Current())
	assert.Equal(t, 1, logs.FilterMessage("Position not persisted").Len())
}

func TestRecorder_ConcurrentReaders(t *testing.T) {
	rec := NewRecorder(nil, nil, defaultViewport, logger.NewNop())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = rec.Current()
			}
		}()
	}
	for i := 0; i < 100; i++ {
		rec.Record(ctx, rightClick(float64(i), float64(i)))
	}
	wg.Wait()

	assert.Equal(t, entity.Position{X: 99, Y: 99}, rec.Current())
}
