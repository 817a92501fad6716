package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fixbridge/internal/application/port/output"
	"fixbridge/internal/domain/entity"
)

// ElementCapturer resolves the element under the last recorded position and
// keeps it as the single most recent capture.
type ElementCapturer struct {
	browser     output.BrowserPort
	recorder    *Recorder
	store       output.Slot[entity.CapturedElement]
	logger      output.LoggerPort
	snapshotDir string
	now         func() time.Time
}

type CaptureConfig struct {
	// SnapshotDir, when set, receives a JPEG thumbnail per capture.
	SnapshotDir string
}

func NewElementCapturer(
	browser output.BrowserPort,
	recorder *Recorder,
	store output.Slot[entity.CapturedElement],
	logger output.LoggerPort,
	cfg CaptureConfig,
) *ElementCapturer {
	return &ElementCapturer{
		browser:     browser,
		recorder:    recorder,
		store:       store,
		logger:      logger.WithField("component", "capture"),
		snapshotDir: cfg.SnapshotDir,
		now:         time.Now,
	}
}

// HandlePointer records the event and, for right-clicks, captures the element
// under the cursor. It returns nil when nothing was captured.
func (c *ElementCapturer) HandlePointer(ctx context.Context, ev entity.PointerEvent) *entity.CapturedElement {
	if !c.recorder.Record(ctx, ev) {
		return nil
	}

	captured, err := c.Capture(ctx)
	if err != nil {
		c.logger.Warn("Element capture failed", "error", err)
		return nil
	}
	return captured
}

func (c *ElementCapturer) Capture(ctx context.Context) (*entity.CapturedElement, error) {
	pos := c.recorder.Current()

	el, err := c.browser.ElementAt(ctx, pos)
	if err != nil {
		return nil, fmt.Errorf("element at (%.0f, %.0f): %w", pos.X, pos.Y, err)
	}
	if el == nil {
		c.logger.Info("No element under cursor", "x", pos.X, "y", pos.Y)
		return nil, nil
	}

	captured := &entity.CapturedElement{
		Element:    el.Clone(),
		Position:   pos,
		CapturedAt: c.now().UTC(),
	}

	if c.store != nil {
		if err := c.store.Save(*captured); err != nil {
			c.logger.Warn("Captured element not persisted", "error", entity.NewStorageWriteFailure("capture.save", err))
		}
	}

	if c.snapshotDir != "" {
		c.saveSnapshot(ctx, captured)
	}

	c.logger.Info("Element captured",
		"tag", captured.Element.TagName,
		"classes", captured.Element.ClassList,
		"x", pos.X,
		"y", pos.Y,
	)
	return captured, nil
}

func (c *ElementCapturer) saveSnapshot(ctx context.Context, captured *entity.CapturedElement) {
	data, err := c.browser.Snapshot(ctx, captured.Position)
	if err != nil {
		c.logger.Warn("Snapshot failed", "error", err)
		return
	}
	if err := os.MkdirAll(c.snapshotDir, 0o755); err != nil {
		c.logger.Warn("Snapshot dir unavailable", "error", err)
		return
	}
	name := fmt.Sprintf("%s_%s.jpg", captured.CapturedAt.Format("2006-01-02_15-04-05"), captured.Element.TagName)
	path := filepath.Join(c.snapshotDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.logger.Warn("Snapshot not written", "error", err, "path", path)
		return
	}
	c.logger.Debug("Snapshot saved", "path", path)
}
