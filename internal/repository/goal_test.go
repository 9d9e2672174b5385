package repository

import (
	"errors"
	"testing"

	"github.com/gonogoapp/gonogo/internal/model"
	"github.com/gonogoapp/gonogo/internal/store"
)

// memKV implements store.KV in memory for repository tests.
type memKV struct {
	data map[string]string
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string]string)}
}

func (m *memKV) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(key, value string) error {
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(key string) error {
	delete(m.data, key)
	return nil
}

func TestGoalRepositoryEmptyUser(t *testing.T) {
	repo := NewGoalRepository(newMemKV())

	goals, err := repo.Goals("u1")
	if err != nil {
		t.Fatalf("Goals: %v", err)
	}
	if len(goals) != 0 {
		t.Errorf("expected empty array, got %d goals", len(goals))
	}
}

func TestGoalRepositoryInsertPreservesOrder(t *testing.T) {
	repo := NewGoalRepository(newMemKV())

	for _, id := range []string{"g1", "g2", "g3"} {
		err := repo.Insert("u1", &model.Goal{ID: id, UserID: "u1"})
		if err != nil {
			t.Fatalf("Insert %s: %v", id, err)
		}
	}

	goals, err := repo.Goals("u1")
	if err != nil {
		t.Fatalf("Goals: %v", err)
	}
	if len(goals) != 3 {
		t.Fatalf("got %d goals, want 3", len(goals))
	}
	for i, want := range []string{"g1", "g2", "g3"} {
		if goals[i].ID != want {
			t.Errorf("goals[%d].ID = %q, want %q", i, goals[i].ID, want)
		}
	}
}

func TestGoalRepositoryByID(t *testing.T) {
	repo := NewGoalRepository(newMemKV())
	if err := repo.Insert("u1", &model.Goal{ID: "g1", Title: "learn go"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	goal, err := repo.ByID("u1", "g1")
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if goal.Title != "learn go" {
		t.Errorf("title = %q", goal.Title)
	}

	_, err = repo.ByID("u1", "missing")
	if !errors.Is(err, ErrGoalNotFound) {
		t.Errorf("ByID missing: err = %v, want ErrGoalNotFound", err)
	}

	// Other users never see this goal
	_, err = repo.ByID("u2", "g1")
	if !errors.Is(err, ErrGoalNotFound) {
		t.Errorf("ByID other user: err = %v, want ErrGoalNotFound", err)
	}
}

func TestGoalRepositoryUpdate(t *testing.T) {
	repo := NewGoalRepository(newMemKV())
	if err := repo.Insert("u1", &model.Goal{ID: "g1", Title: "before"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	err := repo.Update("u1", &model.Goal{ID: "g1", Title: "after"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	goal, err := repo.ByID("u1", "g1")
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if goal.Title != "after" {
		t.Errorf("title = %q, want %q", goal.Title, "after")
	}

	err = repo.Update("u1", &model.Goal{ID: "missing"})
	if !errors.Is(err, ErrGoalNotFound) {
		t.Errorf("Update missing: err = %v, want ErrGoalNotFound", err)
	}
}

func TestGoalRepositoryDeleteIsIdempotent(t *testing.T) {
	repo := NewGoalRepository(newMemKV())
	if err := repo.Insert("u1", &model.Goal{ID: "g1"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if err := repo.Delete("u1", "g1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	// Deleting again is a silent no-op, not an error
	if err := repo.Delete("u1", "g1"); err != nil {
		t.Errorf("second Delete: %v", err)
	}

	goals, err := repo.Goals("u1")
	if err != nil {
		t.Fatalf("Goals: %v", err)
	}
	if len(goals) != 0 {
		t.Errorf("got %d goals after delete, want 0", len(goals))
	}
}

func TestGoalRepositoryCorruptValueDegradesToEmpty(t *testing.T) {
	kv := newMemKV()
	kv.data[store.GoalsKey("u1")] = `{this is not json`

	repo := NewGoalRepository(kv)

	goals, err := repo.Goals("u1")
	if err != nil {
		t.Fatalf("Goals: %v", err)
	}
	if len(goals) != 0 {
		t.Errorf("corrupt value should read as empty, got %d goals", len(goals))
	}

	// The corrupt value stays in place until the next successful write
	if kv.data[store.GoalsKey("u1")] != `{this is not json` {
		t.Error("read path must never rewrite the stored value")
	}
}

func TestGoalRepositoryReplaceAndPurge(t *testing.T) {
	repo := NewGoalRepository(newMemKV())

	err := repo.Replace("u1", []model.Goal{{ID: "g1"}, {ID: "g2"}})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}

	goals, err := repo.Goals("u1")
	if err != nil {
		t.Fatalf("Goals: %v", err)
	}
	if len(goals) != 2 {
		t.Fatalf("got %d goals, want 2", len(goals))
	}

	if err := repo.Purge("u1"); err != nil {
		t.Fatalf("Purge: %v", err)
	}

	goals, err = repo.Goals("u1")
	if err != nil {
		t.Fatalf("Goals after purge: %v", err)
	}
	if len(goals) != 0 {
		t.Errorf("got %d goals after purge, want 0", len(goals))
	}
}
