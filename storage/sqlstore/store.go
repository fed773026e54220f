// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/jotpad/core"
	"github.com/poiesic/jotpad/storage"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/schema"
)

// Store is the server-side repository backed by bun.
// It implements storage.CollectionRepository and storage.SettingsRepository.
type Store struct {
	db     *bun.DB
	logger *slog.Logger
}

var (
	_ storage.CollectionRepository = (*Store)(nil)
	_ storage.SettingsRepository   = (*Store)(nil)
)

// New wraps an open database handle and creates missing tables.
func New(ctx context.Context, db *sql.DB, dialect schema.Dialect) (*Store, error) {
	bunDB := bun.NewDB(db, dialect)
	store := &Store{
		db:     bunDB,
		logger: slog.Default().With("component", "sqlstore"),
	}

	if _, err := bunDB.NewCreateTable().Model((*collectionItem)(nil)).IfNotExists().Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create collection_items table: %w", err)
	}
	if _, err := bunDB.NewCreateIndex().Model((*collectionItem)(nil)).
		Index("collection_items_sort_idx").
		Column("user_id", "kind", "sort_key").
		IfNotExists().
		Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create collection_items index: %w", err)
	}
	if _, err := bunDB.NewCreateTable().Model((*userSettings)(nil)).IfNotExists().Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create user_settings table: %w", err)
	}

	return store, nil
}

// Open opens a SQLite database at dsn.
func Open(ctx context.Context, dsn string) (*Store, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}
	// One connection: SQLite has a single writer, and an in-memory database
	// lives only as long as its connection.
	sqldb.SetMaxOpenConns(1)
	sqldb.SetConnMaxLifetime(0)

	store, err := New(ctx, sqldb, sqlitedialect.New())
	if err != nil {
		sqldb.Close()
		return nil, err
	}
	return store, nil
}

// OpenMemory opens a private in-memory database for testing.
func OpenMemory(ctx context.Context) (*Store, error) {
	return Open(ctx, "file::memory:")
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ListItems returns the collection ordered by sort key, newest first.
func (s *Store) ListItems(ctx context.Context, userID string, kind core.Kind) ([]storage.Record, error) {
	var rows []collectionItem
	err := s.db.NewSelect().
		Model(&rows).
		Where("user_id = ?", userID).
		Where("kind = ?", string(kind)).
		Order("sort_key DESC", "item_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]storage.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, storage.Record{
			ID:      row.ItemID,
			SortKey: row.SortKey,
			Payload: []byte(row.Payload),
		})
	}
	return records, nil
}

// ReplaceItems deletes the user's collection and inserts records in one transaction.
func (s *Store) ReplaceItems(ctx context.Context, userID string, kind core.Kind, records []storage.Record) error {
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*collectionItem)(nil)).
			Where("user_id = ?", userID).
			Where("kind = ?", string(kind)).
			Exec(ctx); err != nil {
			return err
		}
		return insertItems(ctx, tx, userID, kind, records)
	})
	if err != nil {
		return fmt.Errorf("%w: replace %s: %w", storage.ErrTransactionFailed, kind, err)
	}
	s.logger.Debug("replaced collection", "user", userID, "kind", kind, "count", len(records))
	return nil
}

// AppendItems inserts records in one transaction, failing entirely on any id conflict.
func (s *Store) AppendItems(ctx context.Context, userID string, kind core.Kind, records []storage.Record) error {
	if len(records) == 0 {
		return nil
	}
	ids := make([]string, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("%w: %s item %q", storage.ErrDuplicateKey, kind, r.ID)
		}
		seen[r.ID] = struct{}{}
		ids = append(ids, r.ID)
	}

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var existing []string
		if err := tx.NewSelect().
			Model((*collectionItem)(nil)).
			Column("item_id").
			Where("user_id = ?", userID).
			Where("kind = ?", string(kind)).
			Where("item_id IN (?)", bun.In(ids)).
			Limit(1).
			Scan(ctx, &existing); err != nil {
			return err
		}
		if len(existing) > 0 {
			return fmt.Errorf("%w: %s item %q", storage.ErrDuplicateKey, kind, existing[0])
		}
		return insertItems(ctx, tx, userID, kind, records)
	})
	if errors.Is(err, storage.ErrDuplicateKey) {
		return err
	}
	if err != nil {
		return fmt.Errorf("%w: append %s: %w", storage.ErrTransactionFailed, kind, err)
	}
	s.logger.Debug("appended to collection", "user", userID, "kind", kind, "count", len(records))
	return nil
}

func insertItems(ctx context.Context, tx bun.Tx, userID string, kind core.Kind, records []storage.Record) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]collectionItem, 0, len(records))
	for _, r := range records {
		rows = append(rows, collectionItem{
			UserID:  userID,
			Kind:    string(kind),
			ItemID:  r.ID,
			SortKey: r.SortKey,
			Payload: string(r.Payload),
		})
	}
	_, err := tx.NewInsert().Model(&rows).Exec(ctx)
	return err
}

// GetSettings returns storage.ErrNotFound when the user has no stored settings.
func (s *Store) GetSettings(ctx context.Context, userID string) (*core.UserAISettings, error) {
	row := new(userSettings)
	if err := s.db.NewSelect().Model(row).Where("user_id = ?", userID).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &core.UserAISettings{
		PreferredAI: core.ParseProviderID(row.PreferredAI),
		OpenAIKey:   row.OpenAIKey,
		ClaudeKey:   row.ClaudeKey,
		GeminiKey:   row.GeminiKey,
	}, nil
}

// PutSettings upserts the user's settings.
func (s *Store) PutSettings(ctx context.Context, userID string, settings *core.UserAISettings) error {
	settings = settings.Normalized()
	row := &userSettings{
		UserID:      userID,
		PreferredAI: string(settings.PreferredAI),
		OpenAIKey:   settings.OpenAIKey,
		ClaudeKey:   settings.ClaudeKey,
		GeminiKey:   settings.GeminiKey,
		UpdatedAt:   time.Now().UTC(),
	}
	_, err := s.db.NewInsert().
		Model(row).
		On("CONFLICT (user_id) DO UPDATE").
		Set("preferred_ai = EXCLUDED.preferred_ai").
		Set("openai_key = EXCLUDED.openai_key").
		Set("claude_key = EXCLUDED.claude_key").
		Set("gemini_key = EXCLUDED.gemini_key").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}
