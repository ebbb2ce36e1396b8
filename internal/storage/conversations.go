// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jeranaias/carchat/internal/locale"
	"github.com/jeranaias/carchat/internal/model"
	"github.com/jeranaias/carchat/internal/util"
	"github.com/jeranaias/carchat/internal/vehicle"
)

// DefaultMaxConversations is the eviction threshold used by the CLI.
const DefaultMaxConversations = 100

// =============================================================================
// CONVERSATION STORE
// =============================================================================

// ConversationStore handles conversation persistence.
type ConversationStore struct {
	db *sql.DB

	// MaxConversations limits stored conversations (0 = unlimited)
	MaxConversations int
}

// Open opens or creates the database at path. Use ":memory:" for a
// throwaway store.
func Open(path string, maxConversations int) (*ConversationStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &ConversationStore{db: db, MaxConversations: maxConversations}, nil
}

// Close closes the database.
func (s *ConversationStore) Close() error {
	return s.db.Close()
}

// =============================================================================
// SAVE OPERATIONS
// =============================================================================

// Save inserts or replaces conv and its messages, then evicts the oldest
// conversations past MaxConversations.
func (s *ConversationStore) Save(ctx context.Context, conv *model.Conversation) error {
	if conv.ID == "" {
		return errors.New("conversation has no id")
	}
	if conv.CreatedAt.IsZero() {
		conv.CreatedAt = time.Now()
	}
	if conv.UpdatedAt.IsZero() {
		conv.UpdatedAt = conv.CreatedAt
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO conversations (id, title, language, created_at, updated_at, message_count, preview)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			language = excluded.language,
			updated_at = excluded.updated_at,
			message_count = excluded.message_count,
			preview = excluded.preview`,
		conv.ID, conv.Title, conv.Language.String(),
		conv.CreatedAt.UnixNano(), conv.UpdatedAt.UnixNano(),
		len(conv.Messages), conv.Preview(),
	)
	if err != nil {
		return fmt.Errorf("failed to save conversation: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM messages WHERE conversation_id = ?", conv.ID); err != nil {
		return fmt.Errorf("failed to clear messages: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO messages (conversation_id, seq, id, role, content, timestamp, vehicles, ai_response, is_error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, msg := range conv.Messages {
		var vehicles sql.NullString
		if msg.Vehicles != nil {
			data, err := json.Marshal(msg.Vehicles)
			if err != nil {
				return fmt.Errorf("failed to encode vehicles: %w", err)
			}
			vehicles = sql.NullString{String: string(data), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			conv.ID, i, msg.ID, msg.Role.String(), msg.Content,
			msg.Timestamp.UnixNano(), vehicles, msg.AIResponse, msg.IsError,
		); err != nil {
			return fmt.Errorf("failed to save message: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	if s.MaxConversations > 0 {
		return s.enforceLimit(ctx)
	}
	return nil
}

// enforceLimit removes the least recently updated conversations past the limit.
func (s *ConversationStore) enforceLimit(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM conversations WHERE id IN (
			SELECT id FROM conversations
			ORDER BY updated_at DESC, id DESC
			LIMIT -1 OFFSET ?
		)`, s.MaxConversations)
	if err != nil {
		return fmt.Errorf("failed to evict old conversations: %w", err)
	}
	return nil
}

// =============================================================================
// LOAD OPERATIONS
// =============================================================================

// Load retrieves a conversation by id or by a unique id prefix.
func (s *ConversationStore) Load(ctx context.Context, id string) (*model.Conversation, error) {
	fullID, err := s.resolveID(ctx, id)
	if err != nil {
		return nil, err
	}

	var (
		conv               model.Conversation
		lang               string
		createdAt, updated int64
	)
	err = s.db.QueryRowContext(ctx,
		"SELECT id, title, language, created_at, updated_at FROM conversations WHERE id = ?", fullID,
	).Scan(&conv.ID, &conv.Title, &lang, &createdAt, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	conv.Language = locale.Language(lang)
	conv.CreatedAt = time.Unix(0, createdAt)
	conv.UpdatedAt = time.Unix(0, updated)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, role, content, timestamp, vehicles, ai_response, is_error
		FROM messages WHERE conversation_id = ? ORDER BY seq`, fullID)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	defer rows.Close()

	conv.Messages = make([]*model.Message, 0)
	for rows.Next() {
		var (
			msg      model.Message
			role     string
			ts       int64
			vehicles sql.NullString
		)
		if err := rows.Scan(&msg.ID, &role, &msg.Content, &ts, &vehicles, &msg.AIResponse, &msg.IsError); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.Role = model.Role(role)
		msg.Timestamp = time.Unix(0, ts)
		if vehicles.Valid {
			if err := json.Unmarshal([]byte(vehicles.String), &msg.Vehicles); err != nil {
				return nil, fmt.Errorf("failed to decode vehicles: %w", err)
			}
		}
		conv.Messages = append(conv.Messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &conv, nil
}

// LoadByIndex loads a conversation by its position in List (0 = most recent).
func (s *ConversationStore) LoadByIndex(ctx context.Context, index int) (*model.Conversation, error) {
	metas, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(metas) {
		return nil, ErrConversationNotFound
	}
	return s.Load(ctx, metas[index].ID)
}

// resolveID expands a unique id prefix to the full id.
func (s *ConversationStore) resolveID(ctx context.Context, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrConversationNotFound
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM conversations WHERE id = ? OR substr(id, 1, ?) = ? LIMIT 2",
		id, len(id), id)
	if err != nil {
		return "", fmt.Errorf("failed to resolve id: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var found string
		if err := rows.Scan(&found); err != nil {
			return "", err
		}
		if found == id {
			return found, nil
		}
		ids = append(ids, found)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	switch len(ids) {
	case 0:
		return "", ErrConversationNotFound
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%w: %q", ErrAmbiguousID, id)
	}
}

// =============================================================================
// LIST OPERATIONS
// =============================================================================

// List returns all saved conversations, most recent first.
func (s *ConversationStore) List(ctx context.Context) ([]model.ConversationMeta, error) {
	return s.queryMetas(ctx, `
		SELECT id, title, language, message_count, created_at, updated_at, preview
		FROM conversations ORDER BY updated_at DESC, id DESC`)
}

// Search finds conversations whose title, preview or any message contains
// query, case-insensitively.
func (s *ConversationStore) Search(ctx context.Context, query string) ([]model.ConversationMeta, error) {
	if strings.TrimSpace(query) == "" {
		return s.List(ctx)
	}
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	return s.queryMetas(ctx, `
		SELECT id, title, language, message_count, created_at, updated_at, preview
		FROM conversations c
		WHERE lower(c.title) LIKE ? ESCAPE '\'
		   OR lower(c.preview) LIKE ? ESCAPE '\'
		   OR EXISTS (
				SELECT 1 FROM messages m
				WHERE m.conversation_id = c.id AND lower(m.content) LIKE ? ESCAPE '\'
		   )
		ORDER BY updated_at DESC, id DESC`, pattern, pattern, pattern)
}

func (s *ConversationStore) queryMetas(ctx context.Context, query string, args ...any) ([]model.ConversationMeta, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	metas := make([]model.ConversationMeta, 0)
	for rows.Next() {
		var (
			meta               model.ConversationMeta
			lang               string
			createdAt, updated int64
		)
		if err := rows.Scan(&meta.ID, &meta.Title, &lang, &meta.MessageCount, &createdAt, &updated, &meta.Preview); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		meta.Language = locale.Language(lang)
		meta.CreatedAt = time.Unix(0, createdAt)
		meta.UpdatedAt = time.Unix(0, updated)
		metas = append(metas, meta)
	}
	return metas, rows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// =============================================================================
// DELETE OPERATIONS
// =============================================================================

// Delete removes a conversation by id or unique prefix.
func (s *ConversationStore) Delete(ctx context.Context, id string) error {
	fullID, err := s.resolveID(ctx, id)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, "DELETE FROM conversations WHERE id = ?", fullID)
	if err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrConversationNotFound
	}
	return nil
}

// Clear removes all saved conversations.
func (s *ConversationStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM conversations")
	return err
}

// =============================================================================
// VIEWED VEHICLES
// =============================================================================

// ViewedVehicle is one opened detail card.
type ViewedVehicle struct {
	Vehicle  vehicle.Vehicle
	ViewedAt time.Time
}

// RecordView logs that the detail card of v was opened.
func (s *ConversationStore) RecordView(ctx context.Context, v *vehicle.Vehicle) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode vehicle: %w", err)
	}
	var price sql.NullFloat64
	if v.PublicPrice != nil {
		price = sql.NullFloat64{Float64: v.PublicPrice.Float(), Valid: true}
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO viewed_vehicles (vehicle_id, title, price, payload, viewed_at) VALUES (?, ?, ?, ?, ?)",
		v.ID, v.Title(), price, string(payload), time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to record view: %w", err)
	}
	return nil
}

// RecentViews returns the last limit opened vehicles, newest first.
func (s *ConversationStore) RecentViews(ctx context.Context, limit int) ([]ViewedVehicle, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT payload, viewed_at FROM viewed_vehicles ORDER BY viewed_at DESC, id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list views: %w", err)
	}
	defer rows.Close()

	var out []ViewedVehicle
	for rows.Next() {
		var (
			payload string
			ts      int64
			vv      ViewedVehicle
		)
		if err := rows.Scan(&payload, &ts); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(payload), &vv.Vehicle); err != nil {
			return nil, fmt.Errorf("failed to decode vehicle: %w", err)
		}
		vv.ViewedAt = time.Unix(0, ts)
		out = append(out, vv)
	}
	return out, rows.Err()
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrConversationNotFound is returned when a conversation doesn't exist.
// Use errors.Is(err, ErrConversationNotFound) to check for this error.
var ErrConversationNotFound = &ConversationError{Message: "conversation not found"}

// ErrAmbiguousID is returned when an id prefix matches several conversations.
var ErrAmbiguousID = &ConversationError{Message: "ambiguous conversation id"}

// ConversationError represents a conversation-related error.
type ConversationError struct {
	Message string
}

// Error implements the error interface.
func (e *ConversationError) Error() string {
	return e.Message
}

// Is implements errors.Is support for comparing conversation errors.
func (e *ConversationError) Is(target error) bool {
	t, ok := target.(*ConversationError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

// =============================================================================
// SESSION LIST FORMATTING
// =============================================================================

// FormatSessionList formats sessions as a table of id, update time,
// language, message count and title.
func FormatSessionList(sessions []model.ConversationMeta) string {
	if len(sessions) == 0 {
		return "No sessions found.\n"
	}

	var sb strings.Builder
	sb.WriteString(util.PadRight("ID", 10) + " " + util.PadRight("Updated", 16) + " " +
		util.PadRight("Lang", 4) + " " + util.PadRight("Msgs", 4) + " Title\n")
	sb.WriteString(strings.Repeat("-", 72) + "\n")

	for _, s := range sessions {
		id := s.ID
		if len(id) > 8 {
			id = id[:8]
		}
		sb.WriteString(util.PadRight(id, 10) + " " +
			util.PadRight(s.UpdatedAt.Format("2006-01-02 15:04"), 16) + " " +
			util.PadRight(s.Language.String(), 4) + " " +
			util.PadRight(fmt.Sprint(s.MessageCount), 4) + " " +
			util.Truncate(s.Title, 34) + "\n")
	}
	return sb.String()
}
