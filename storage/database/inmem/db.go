package inmemdb

import (
	"sync"

	"github.com/studyflow/studyflow/core/assignment"
	"github.com/studyflow/studyflow/core/gpa"
	"github.com/studyflow/studyflow/core/predictor"
	"github.com/studyflow/studyflow/core/study"
	"github.com/studyflow/studyflow/core/timer"
	"github.com/studyflow/studyflow/core/user"
)

type (
	// DB is a process local store. Rows are copied in and out so callers never share memory with it.
	DB struct {
		user        *userTable
		assessments *ownedTable[predictor.Assessment]
		targets     *settingsTable[predictor.Target]
		courses     *ownedTable[gpa.Course]
		assignments *ownedTable[assignment.Assignment]
		sessions    *ownedTable[study.Session]
		timers      *settingsTable[timer.State]
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	// ownedTable holds rows owned by a user, in insertion order.
	ownedTable[T any] struct {
		sync.RWMutex
		rows  map[string]map[string]T // {userID: {id: row}}
		order map[string][]string     // {userID: [id]}
	}

	// settingsTable holds one row per user.
	settingsTable[T any] struct {
		sync.RWMutex
		rows map[string]T // {userID: row}
	}
)

func Open() *DB {
	return &DB{
		user:        &userTable{table: make(map[string]*user.User)},
		assessments: newOwnedTable[predictor.Assessment](),
		targets:     newSettingsTable[predictor.Target](),
		courses:     newOwnedTable[gpa.Course](),
		assignments: newOwnedTable[assignment.Assignment](),
		sessions:    newOwnedTable[study.Session](),
		timers:      newSettingsTable[timer.State](),
	}
}

// dropOwner removes everything a deleted user owns.
func (db *DB) dropOwner(userID string) {
	db.assessments.dropOwner(userID)
	db.targets.remove(userID)
	db.courses.dropOwner(userID)
	db.assignments.dropOwner(userID)
	db.sessions.dropOwner(userID)
	db.timers.remove(userID)
}

func newOwnedTable[T any]() *ownedTable[T] {
	return &ownedTable[T]{
		rows:  make(map[string]map[string]T),
		order: make(map[string][]string),
	}
}

func (t *ownedTable[T]) list(userID string) []T {
	t.RLock()
	defer t.RUnlock()

	ids := t.order[userID]
	rows := make([]T, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, t.rows[userID][id])
	}
	return rows
}

func (t *ownedTable[T]) get(userID, id string) (T, bool) {
	t.RLock()
	defer t.RUnlock()

	row, ok := t.rows[userID][id]
	return row, ok
}

func (t *ownedTable[T]) insert(userID, id string, row T) {
	t.Lock()
	defer t.Unlock()

	if t.rows[userID] == nil {
		t.rows[userID] = make(map[string]T)
	}
	if _, exists := t.rows[userID][id]; !exists {
		t.order[userID] = append(t.order[userID], id)
	}
	t.rows[userID][id] = row
}

func (t *ownedTable[T]) replace(userID, id string, row T) bool {
	t.Lock()
	defer t.Unlock()

	if _, ok := t.rows[userID][id]; !ok {
		return false
	}
	t.rows[userID][id] = row
	return true
}

func (t *ownedTable[T]) remove(userID, id string) bool {
	t.Lock()
	defer t.Unlock()

	if _, ok := t.rows[userID][id]; !ok {
		return false
	}
	delete(t.rows[userID], id)
	ids := t.order[userID]
	for i, rid := range ids {
		if rid == id {
			t.order[userID] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
	return true
}

func (t *ownedTable[T]) dropOwner(userID string) {
	t.Lock()
	defer t.Unlock()

	delete(t.rows, userID)
	delete(t.order, userID)
}

func newSettingsTable[T any]() *settingsTable[T] {
	return &settingsTable[T]{rows: make(map[string]T)}
}

func (t *settingsTable[T]) get(userID string) (T, bool) {
	t.RLock()
	defer t.RUnlock()

	row, ok := t.rows[userID]
	return row, ok
}

func (t *settingsTable[T]) put(userID string, row T) {
	t.Lock()
	defer t.Unlock()
	t.rows[userID] = row
}

func (t *settingsTable[T]) remove(userID string) {
	t.Lock()
	defer t.Unlock()
	delete(t.rows, userID)
}
