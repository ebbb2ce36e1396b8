// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/jeranaias/carchat/internal/locale"
	"github.com/jeranaias/carchat/internal/model"
	"github.com/jeranaias/carchat/internal/vehicle"
)

// Error variables for rejected input.
var (
	// ErrEmptyInput indicates the message was blank.
	ErrEmptyInput = errors.New("empty message")

	// ErrBusy indicates a request is already in flight.
	ErrBusy = errors.New("request already in progress")

	// ErrNotPending indicates Complete was called without a matching Begin.
	ErrNotPending = errors.New("no request in progress")
)

// Searcher is the remote search function.
type Searcher interface {
	Search(ctx context.Context, message string, lang locale.Language, convCtx *vehicle.Context) (*vehicle.SearchResult, error)
	Details(ctx context.Context, id int64) (*vehicle.Vehicle, error)
}

// Request is an outgoing search prepared by Begin.
type Request struct {
	Message  string
	Language locale.Language
	Context  *vehicle.Context
}

// Controller tracks one conversation. It is safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	searcher Searcher
	logger   *zap.Logger

	lang    locale.Language
	conv    *model.Conversation
	busy    bool
	pending *Request
	opened  *vehicle.Vehicle
	dirty   bool

	onOpen func(*vehicle.Vehicle)
}

// New creates a controller with an empty conversation in lang.
func New(searcher Searcher, lang locale.Language) *Controller {
	if !lang.Valid() {
		lang = locale.Default
	}
	return &Controller{
		searcher: searcher,
		logger:   zap.NewNop(),
		lang:     lang,
		conv:     model.NewConversation(lang),
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func (c *Controller) WithLogger(logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	c.logger = logger.Named("chat")
	return c
}

// SetOpenCallback registers fn to run whenever a detail card opens.
func (c *Controller) SetOpenCallback(fn func(*vehicle.Vehicle)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onOpen = fn
}

// =============================================================================
// REQUEST LIFECYCLE
// =============================================================================

// Begin validates text, appends it as a user message and marks the
// controller busy. The returned request must be passed to the Searcher and
// its outcome to Complete.
func (c *Controller) Begin(text string) (*Request, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}
	if c.busy {
		return nil, ErrBusy
	}

	req := &Request{
		Message:  text,
		Language: c.lang,
		Context:  vehicle.NewContext(c.conv.LastVehicles()),
	}

	c.conv.AddMessage(model.NewUserMessage(text))
	c.busy = true
	c.pending = req
	c.dirty = true
	return req, nil
}

// Complete records the outcome of the pending request and returns the
// assistant message it appended. Every error becomes the same localized
// apology.
func (c *Controller) Complete(result *vehicle.SearchResult, err error) (*model.Message, error) {
	c.mu.Lock()

	if !c.busy || c.pending == nil {
		c.mu.Unlock()
		return nil, ErrNotPending
	}
	lang := c.pending.Language
	c.busy = false
	c.pending = nil
	c.dirty = true

	var (
		msg    *model.Message
		opened *vehicle.Vehicle
	)
	switch {
	case err != nil || result == nil:
		if err == nil {
			err = errors.New("empty result")
		}
		c.logger.Warn("search error", zap.Error(err))
		msg = model.NewErrorMessage(locale.T(lang, "chat.error"))

	case result.IsDetails():
		c.opened = result.Vehicle
		opened = result.Vehicle
		msg = model.NewAssistantMessage(locale.T(lang, "chat.details_intro"))

	default:
		content := result.AIResponse
		if strings.TrimSpace(content) == "" {
			content = locale.T(lang, "chat.found_default")
		}
		msg = model.NewAssistantMessage(content)
		msg.Vehicles = result.Vehicles
		msg.AIResponse = result.AIResponse
		c.logger.Debug("search complete", zap.Int("vehicles", len(result.Vehicles)))
	}

	c.conv.AddMessage(msg)
	out := msg.Clone()
	onOpen := c.onOpen
	c.mu.Unlock()

	if opened != nil && onOpen != nil {
		onOpen(opened)
	}
	return out, nil
}

// Submit runs Begin, the search and Complete in one call.
func (c *Controller) Submit(ctx context.Context, text string) (*model.Message, error) {
	req, err := c.Begin(text)
	if err != nil {
		return nil, err
	}
	result, err := c.searcher.Search(ctx, req.Message, req.Language, req.Context)
	return c.Complete(result, err)
}

// Search runs req against the configured Searcher. The TUI calls it from a
// command between Begin and Complete.
func (c *Controller) Search(ctx context.Context, req *Request) (*vehicle.SearchResult, error) {
	return c.searcher.Search(ctx, req.Message, req.Language, req.Context)
}

// =============================================================================
// DETAIL CARD
// =============================================================================

// OpenVehicle fetches the full record for id and makes it the open detail
// card. Failures are logged and returned; the conversation is unchanged.
func (c *Controller) OpenVehicle(ctx context.Context, id int64) (*vehicle.Vehicle, error) {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	c.busy = true
	c.mu.Unlock()

	v, err := c.searcher.Details(ctx, id)

	c.mu.Lock()
	c.busy = false
	if err != nil {
		c.mu.Unlock()
		c.logger.Warn("vehicle details error", zap.Int64("vehicle_id", id), zap.Error(err))
		return nil, err
	}
	c.opened = v
	onOpen := c.onOpen
	c.mu.Unlock()

	if onOpen != nil {
		onOpen(v)
	}
	return v, nil
}

// OpenedVehicle returns the vehicle whose detail card is open, or nil.
func (c *Controller) OpenedVehicle() *vehicle.Vehicle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opened
}

// CloseVehicle closes the detail card.
func (c *Controller) CloseVehicle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opened = nil
}

// =============================================================================
// STATE
// =============================================================================

// Language returns the current language.
func (c *Controller) Language() locale.Language {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lang
}

// SetLanguage switches the language for subsequent requests and generated
// text. Existing messages are left as they are.
func (c *Controller) SetLanguage(lang locale.Language) error {
	if !lang.Valid() {
		return locale.ErrUnsupported
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lang = lang
	c.conv.Language = lang
	return nil
}

// Busy reports whether a request is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Clear starts a new empty conversation. It fails while a request is in
// flight.
func (c *Controller) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrBusy
	}
	c.conv = model.NewConversation(c.lang)
	c.opened = nil
	c.dirty = false
	return nil
}

// Load replaces the conversation with conv, typically a saved session.
func (c *Controller) Load(conv *model.Conversation) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrBusy
	}
	c.conv = conv.Clone()
	if conv.Language.Valid() {
		c.lang = conv.Language
	}
	c.opened = nil
	c.dirty = false
	return nil
}

// Messages returns a copy of the ordered message list.
func (c *Controller) Messages() []*model.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*model.Message, len(c.conv.Messages))
	for i, m := range c.conv.Messages {
		out[i] = m.Clone()
	}
	return out
}

// LastVehicles returns the results of the most recent search. It is empty
// when that search matched nothing.
func (c *Controller) LastVehicles() []vehicle.Vehicle {
	c.mu.Lock()
	defer c.mu.Unlock()
	src := c.conv.LastVehicles()
	if src == nil {
		return nil
	}
	out := make([]vehicle.Vehicle, len(src))
	copy(out, src)
	return out
}

// Conversation returns a snapshot of the conversation for saving.
func (c *Controller) Conversation() *model.Conversation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conv.Clone()
}

// Dirty reports whether there are changes since the last Clear, Load or
// MarkSaved.
func (c *Controller) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

// MarkSaved clears the dirty flag.
func (c *Controller) MarkSaved() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty = false
}
