package database

import (
	"database/sql"
	"time"
)

const sessionKey = "session"

// SessionRepository persists the serialized session blob under a single
// key. It implements store.SessionPersistence.
type SessionRepository struct {
	db *DB
}

func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Save(data []byte) error {
	_, err := r.db.Exec(`
		INSERT INTO session (key, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`, sessionKey, string(data), time.Now())
	return err
}

// Load returns (nil, nil) when no session is stored.
func (r *SessionRepository) Load() ([]byte, error) {
	var data string
	err := r.db.QueryRow(`SELECT data FROM session WHERE key = ?`, sessionKey).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(data), nil
}

func (r *SessionRepository) Clear() error {
	_, err := r.db.Exec(`DELETE FROM session WHERE key = ?`, sessionKey)
	return err
}
