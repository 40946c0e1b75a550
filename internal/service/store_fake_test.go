package service

import (
	"context"
	"database/sql"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/MKhiriev/go-account-keeper/internal/store"
	"github.com/MKhiriev/go-account-keeper/models"
)

// memStore is an in-memory store.AccountStore. WithinTx restores the rows
// it started with when fn fails.
type memStore struct {
	mu     sync.Mutex
	rows   map[int64]models.AccountRecord
	nextID int64
	now    func() time.Time

	finds int
}

func newMemStore(now func() time.Time) *memStore {
	return &memStore{rows: map[int64]models.AccountRecord{}, nextID: 1, now: now}
}

func (m *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repo store.AccountRepository) error) error {
	m.mu.Lock()
	snapshot := maps.Clone(m.rows)
	nextID := m.nextID
	m.mu.Unlock()

	if err := fn(ctx, m); err != nil {
		m.mu.Lock()
		m.rows = snapshot
		m.nextID = nextID
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *memStore) FindByID(ctx context.Context, id int64) (models.AccountRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finds++

	rec, ok := m.rows[id]
	if !ok {
		return models.AccountRecord{}, store.ErrAccountNotFound
	}
	return rec, nil
}

func (m *memStore) FindByUsername(ctx context.Context, username string) (models.AccountRecord, error) {
	return m.FindBySelector(ctx, models.ByUsername(username))
}

func (m *memStore) FindByEmail(ctx context.Context, email string) (models.AccountRecord, error) {
	return m.FindBySelector(ctx, models.ByEmail(email))
}

func (m *memStore) FindBySelector(ctx context.Context, selector models.Selector) (models.AccountRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finds++

	if selector.IsEmpty() {
		return models.AccountRecord{}, store.ErrEmptySelector
	}
	for _, rec := range m.rows {
		if matchesAll(rec, selector) {
			return rec, nil
		}
	}
	return models.AccountRecord{}, store.ErrAccountNotFound
}

func (m *memStore) FindByInteractionCode(ctx context.Context, code string) (models.AccountRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finds++

	for _, rec := range m.rows {
		if rec.ActCode.Valid && rec.ActCode.String == code {
			return rec, nil
		}
	}
	return models.AccountRecord{}, store.ErrAccountNotFound
}

func (m *memStore) ExistsAny(ctx context.Context, selector models.Selector) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, rec := range m.rows {
		if (selector.Username != "" && rec.Username == selector.Username) ||
			(selector.Email != "" && rec.Email == selector.Email) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) Insert(ctx context.Context, record models.AccountRecord) (int64, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.unique(0, record.Username, record.Email); err != nil {
		return 0, time.Time{}, err
	}

	record.ID = m.nextID
	record.RegisteredAt = m.now().UTC()
	m.rows[record.ID] = record
	m.nextID++
	return record.ID, record.RegisteredAt, nil
}

func (m *memStore) UpdatePartial(ctx context.Context, id int64, columns []string, values map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(columns) == 0 {
		return store.ErrNothingToUpdate
	}
	rec, ok := m.rows[id]
	if !ok {
		return store.ErrAccountNotFound
	}
	for _, column := range columns {
		if err := applyColumn(&rec, column, values[column]); err != nil {
			return err
		}
	}
	if err := m.unique(id, rec.Username, rec.Email); err != nil {
		return err
	}
	m.rows[id] = rec
	return nil
}

func (m *memStore) DeleteWhere(ctx context.Context, selector models.Selector) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for id, rec := range m.rows {
		if matchesAll(rec, selector) {
			delete(m.rows, id)
			n++
		}
	}
	return n, nil
}

func (m *memStore) SuspendWhere(ctx context.Context, selector models.Selector) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for id, rec := range m.rows {
		if matchesAll(rec, selector) {
			rec.Active = false
			m.rows[id] = rec
			n++
		}
	}
	return n, nil
}

func (m *memStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func (m *memStore) byUsername(username string) (models.AccountRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.rows {
		if rec.Username == username {
			return rec, true
		}
	}
	return models.AccountRecord{}, false
}

func (m *memStore) unique(id int64, username, email string) error {
	for other, rec := range m.rows {
		if other == id {
			continue
		}
		if rec.Username == username {
			return fmt.Errorf("%w: %s", store.ErrUsernameTaken, username)
		}
		if rec.Email == email {
			return fmt.Errorf("%w: %s", store.ErrEmailTaken, email)
		}
	}
	return nil
}

func matchesAll(rec models.AccountRecord, selector models.Selector) bool {
	if selector.IsEmpty() {
		return false
	}
	if selector.Username != "" && rec.Username != selector.Username {
		return false
	}
	if selector.Email != "" && rec.Email != selector.Email {
		return false
	}
	return true
}

func applyColumn(rec *models.AccountRecord, column string, value any) error {
	switch column {
	case "username":
		rec.Username = value.(string)
	case "email":
		rec.Email = value.(string)
	case "password":
		rec.Password = value.(string)
	case "active":
		rec.Active = value.(bool)
	case "pending_pwd":
		rec.PendingPassword = nullStringValue(value)
	case "act_code":
		rec.ActCode = nullStringValue(value)
	case "act_type":
		rec.ActType = nullStringValue(value)
	case "act_time":
		if t, ok := value.(time.Time); ok {
			rec.ActTime = sql.NullTime{Time: t, Valid: true}
		} else {
			rec.ActTime = sql.NullTime{}
		}
	default:
		return fmt.Errorf("%w: unknown column %q", store.ErrBuildingSQLQuery, column)
	}
	return nil
}

func nullStringValue(value any) sql.NullString {
	if s, ok := value.(string); ok {
		return sql.NullString{String: s, Valid: true}
	}
	return sql.NullString{}
}
