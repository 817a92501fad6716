package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"fixbridge/internal/application/port/output"
	"fixbridge/internal/domain/entity"
)

type Relay struct {
	host      output.MessagingHost
	selection output.SelectionSource
	handlers  *HandlerRegistry
	teardown  func()
	logger    output.LoggerPort
}

type RelayConfig struct {
	Host output.MessagingHost
	// Fallback replaces a nil or unavailable Host, normally a no-op host.
	Fallback  output.MessagingHost
	Selection output.SelectionSource
	// Teardown is invoked on a close message.
	Teardown func()
}

// NewRelay wires the built-in get-selection and close handlers. A missing or
// unavailable host degrades the relay to the fallback; with no fallback the
// relay answers nothing.
func NewRelay(cfg RelayConfig, logger output.LoggerPort) *Relay {
	logger = logger.WithField("component", "relay")

	host := cfg.Host
	if host == nil || !host.Available() {
		logger.Warn("Messaging host unavailable, relay runs in standalone mode",
			"error", entity.NewHostUnavailable("relay.new"))
		host = cfg.Fallback
	}

	teardown := cfg.Teardown
	if teardown == nil {
		teardown = func() {}
	}

	r := &Relay{
		host:      host,
		selection: cfg.Selection,
		handlers:  NewHandlerRegistry(),
		teardown:  teardown,
		logger:    logger,
	}

	r.Register(entity.MessageGetSelection, r.handleGetSelection)
	r.Register(entity.MessageQuerySelection, r.handleGetSelection)
	r.Register(entity.MessageClose, r.handleClose)

	return r
}

func (r *Relay) Register(t entity.MessageType, h Handler) {
	r.handlers.Register(t, h)
}

// Bootstrap asks the host for its rendering surface and publishes the initial
// selection state.
func (r *Relay) Bootstrap(ctx context.Context, opts entity.SurfaceOptions) {
	if r.host != nil {
		if err := r.host.ShowUI(ctx, opts); err != nil {
			r.logger.Warn("Failed to request UI surface", "error", err, "width", opts.Width, "height", opts.Height)
		}
	}
	r.NotifySelectionChanged(ctx)
}

// Run dispatches inbound messages until ctx is done or the inbox closes.
func (r *Relay) Run(ctx context.Context) error {
	var inbox <-chan entity.RelayMessage
	if r.host != nil {
		inbox = r.host.Inbox()
	}
	if inbox == nil {
		<-ctx.Done()
		return ctx.Err()
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-inbox:
			if !ok {
				return nil
			}
			if err := r.Dispatch(ctx, msg); err != nil {
				r.logger.Warn("Message dispatch failed", "type", msg.Type, "error", err)
			}
		}
	}
}

// Dispatch runs the handler bound to msg.Type, awaits its reply and posts the
// response, if any.
func (r *Relay) Dispatch(ctx context.Context, msg entity.RelayMessage) error {
	h, ok := r.handlers.Get(msg.Type)
	if !ok {
		r.logger.Debug("No handler for message", "type", msg.Type)
		return nil
	}

	r.logger.Debug("Message received", "type", msg.Type, "id", msg.ID)

	var reply Reply
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res, ok := <-h(ctx, msg):
		if ok {
			reply = res
		}
	}

	if reply.Err != nil {
		return fmt.Errorf("handle %s: %w", msg.Type, reply.Err)
	}
	if reply.Message == nil {
		return nil
	}

	out := *reply.Message
	if out.ID == "" {
		out.ID = uuid.NewString()
	}
	out.ReplyTo = msg.ID
	if err := r.post(ctx, out); err != nil {
		return fmt.Errorf("post %s: %w", out.Type, err)
	}
	return nil
}

// NotifySelectionChanged posts whether anything is currently selected.
func (r *Relay) NotifySelectionChanged(ctx context.Context) {
	msg, err := entity.NewRelayMessage(entity.MessageSelectionChanged, entity.SelectionChanged{
		HasSelection: len(r.snapshot()) > 0,
	})
	if err != nil {
		r.logger.Error("Failed to encode selection change", "error", err)
		return
	}
	msg.ID = uuid.NewString()
	if err := r.post(ctx, msg); err != nil {
		r.logger.Warn("Failed to post selection change", "error", err)
	}
}

func (r *Relay) handleGetSelection(ctx context.Context, msg entity.RelayMessage) <-chan Reply {
	resp, err := entity.NewRelayMessage(entity.MessageSelectionData, entity.SelectionData{
		Data: r.snapshot(),
	})
	if err != nil {
		return Resolved(nil, err)
	}
	return Resolved(&resp, nil)
}

func (r *Relay) handleClose(ctx context.Context, msg entity.RelayMessage) <-chan Reply {
	r.logger.Info("Close requested, tearing down surface")
	r.teardown()
	return Resolved(nil, nil)
}

func (r *Relay) snapshot() []entity.SelectionItem {
	if r.selection == nil {
		return []entity.SelectionItem{}
	}
	items := r.selection.Snapshot()
	if items == nil {
		return []entity.SelectionItem{}
	}
	return items
}

func (r *Relay) post(ctx context.Context, msg entity.RelayMessage) error {
	if r.host == nil {
		r.logger.Debug("Message dropped, no host", "type", msg.Type)
		return nil
	}
	return r.host.Post(ctx, msg)
}
