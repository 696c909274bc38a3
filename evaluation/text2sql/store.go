// Copyright 2025 Google LLC
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

package text2sql

import (
	"context"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store executes SQL against the reference database. Queries are read-only
// from the scorer's perspective; the scorer never mutates reference data.
type Store interface {
	Query(ctx context.Context, sql string) ([]map[string]any, error)
}

// ReferenceStore is a Store backed by a SQLite database holding the
// benchmark's economic reference tables.
type ReferenceStore struct {
	db *gorm.DB
}

// OpenStore opens the reference database at path.
func OpenStore(path string) (*ReferenceStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open reference database: %w", err)
	}
	return &ReferenceStore{db: db}, nil
}

// OpenMemoryStore opens an empty in-memory database, used by tests to
// build fixtures with Exec.
func OpenMemoryStore() (*ReferenceStore, error) {
	return OpenStore(":memory:")
}

// Query runs one SQL statement. Row-returning statements yield one map per
// row keyed by column name; other statements yield a single row with the
// affected count.
func (s *ReferenceStore) Query(ctx context.Context, sql string) ([]map[string]any, error) {
	trimmed := strings.TrimSpace(sql)
	upper := strings.ToUpper(trimmed)

	if strings.HasPrefix(upper, "SELECT") || strings.HasPrefix(upper, "WITH") || strings.HasPrefix(upper, "PRAGMA") {
		rows, err := s.db.WithContext(ctx).Raw(trimmed).Rows()
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		columns, err := rows.Columns()
		if err != nil {
			return nil, err
		}

		var results []map[string]any
		for rows.Next() {
			values := make([]any, len(columns))
			pointers := make([]any, len(columns))
			for i := range values {
				pointers[i] = &values[i]
			}
			if err := rows.Scan(pointers...); err != nil {
				return nil, err
			}
			row := make(map[string]any, len(columns))
			for i, col := range columns {
				row[col] = values[i]
			}
			results = append(results, row)
		}
		return results, rows.Err()
	}

	res := s.db.WithContext(ctx).Exec(trimmed)
	if res.Error != nil {
		return nil, res.Error
	}
	return []map[string]any{{"rows_affected": res.RowsAffected}}, nil
}

// Exec runs a statement without result handling. Tests use it to create
// and populate fixture tables.
func (s *ReferenceStore) Exec(ctx context.Context, sql string, args ...any) error {
	return s.db.WithContext(ctx).Exec(sql, args...).Error
}
