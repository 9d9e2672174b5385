// Package store implements the durable key-value contract the repositories
// persist through. Values are opaque strings (JSON documents in practice);
// keys are namespaced per user and resource.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const namespace = "gonogo"

// GoalsKey builds the storage key holding a user's goal array.
func GoalsKey(userID string) string {
	return fmt.Sprintf("%s_%s_goals", namespace, userID)
}

// KV is a synchronous string store. Get reports presence explicitly so an
// absent key is distinguishable from an empty value.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

type sqlKV struct {
	db *sqlx.DB
}

// NewKV returns a KV backed by the kv_entries table.
func NewKV(db *sqlx.DB) KV {
	return &sqlKV{db: db}
}

func (s *sqlKV) Get(key string) (string, bool, error) {
	var value string
	query := `SELECT value FROM kv_entries WHERE key = $1`

	err := s.db.Get(&value, query, key)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return value, true, nil
}

func (s *sqlKV) Set(key, value string) error {
	// Upsert syntax shared by SQLite and PostgreSQL.
	query := `INSERT INTO kv_entries (key, value, updated_at)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	_, err := s.db.Exec(query, key, value, time.Now())
	return err
}

func (s *sqlKV) Delete(key string) error {
	query := `DELETE FROM kv_entries WHERE key = $1`

	_, err := s.db.Exec(query, key)
	return err
}
