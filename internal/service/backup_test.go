package service

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/gonogoapp/gonogo/internal/model"
)

func newBackupFixture(t *testing.T) (*mockUserRepository, *GoalService, *BackupService) {
	t.Helper()

	users := newMockUserRepository()
	goalRepo := newGoalRepo()
	goals := NewGoalService(goalRepo)
	backups := NewBackupService(users, goalRepo, nil)
	return users, goals, backups
}

func seedUser(t *testing.T, users *mockUserRepository, id, email string) *model.User {
	t.Helper()

	hash := "$2a$10$fakehashfakehashfakehash"
	user := &model.User{
		ID:           id,
		Email:        email,
		PasswordHash: &hash,
		CreatedAt:    time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC),
	}
	if err := users.Create(user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestBackupExportShape(t *testing.T) {
	users, goals, backups := newBackupFixture(t)
	seedUser(t, users, "u1", "runner@example.com")

	if _, err := goals.Create("u1", "run a marathon", "", 7, "", nil); err != nil {
		t.Fatalf("create goal: %v", err)
	}

	backup, err := backups.Export("u1")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	if backup.Version != model.BackupVersion {
		t.Errorf("version = %d, want %d", backup.Version, model.BackupVersion)
	}
	if backup.User.ID != "u1" {
		t.Errorf("user id = %q", backup.User.ID)
	}
	if len(backup.Goals) != 1 {
		t.Errorf("got %d goals, want 1", len(backup.Goals))
	}
	if backup.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestBackupExportImportRoundTrip(t *testing.T) {
	users, goals, backups := newBackupFixture(t)
	seedUser(t, users, "u1", "runner@example.com")

	_, err := goals.Create("u1", "run a marathon", "26.2 miles", 7, "6 months", json.RawMessage(`{"score":7}`))
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}

	backup, err := backups.Export("u1")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	raw, err := json.Marshal(backup)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// Restore into a fresh store
	users2, goals2, backups2 := newBackupFixture(t)

	restored, err := backups2.Import(raw)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if restored.ID != "u1" {
		t.Errorf("restored user id = %q", restored.ID)
	}
	if u, err := users2.ByID("u1"); err != nil || u.Email != "runner@example.com" {
		t.Errorf("restored user: %+v, err=%v", u, err)
	}

	before, err := goals.Goals("u1")
	if err != nil {
		t.Fatalf("Goals before: %v", err)
	}
	after, err := goals2.Goals("u1")
	if err != nil {
		t.Fatalf("Goals after: %v", err)
	}

	// Comparing re-marshaled bytes sidesteps time.Time monotonic-clock noise.
	wantJSON, _ := json.Marshal(before)
	gotJSON, _ := json.Marshal(after)
	if string(gotJSON) != string(wantJSON) {
		t.Errorf("round trip mismatch:\n got %s\nwant %s", gotJSON, wantJSON)
	}
}

func TestBackupImportReplacesGoalsWholesale(t *testing.T) {
	users, goals, backups := newBackupFixture(t)
	user := seedUser(t, users, "u1", "runner@example.com")

	if _, err := goals.Create("u1", "old goal one", "", 6, "", nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := goals.Create("u1", "old goal two", "", 6, "", nil); err != nil {
		t.Fatalf("create: %v", err)
	}

	raw, _ := json.Marshal(model.Backup{
		User:      *user,
		Goals:     []model.Goal{{ID: "imported", UserID: "u1", Title: "imported goal", Status: model.GoalStatusActive}},
		Timestamp: time.Now().UTC(),
		Version:   model.BackupVersion,
	})

	if _, err := backups.Import(raw); err != nil {
		t.Fatalf("Import: %v", err)
	}

	stored, err := goals.Goals("u1")
	if err != nil {
		t.Fatalf("Goals: %v", err)
	}
	if len(stored) != 1 || stored[0].ID != "imported" {
		t.Errorf("import must overwrite the array wholesale, got %+v", stored)
	}
}

func TestBackupImportLeavesOtherUsersAlone(t *testing.T) {
	users, goals, backups := newBackupFixture(t)
	seedUser(t, users, "u2", "other@example.com")

	if _, err := goals.Create("u2", "untouched goal", "", 7, "", nil); err != nil {
		t.Fatalf("create: %v", err)
	}

	raw := []byte(`{"user":{"id":"u1","email":"new@example.com"},"goals":[],"timestamp":"2026-08-01T00:00:00Z","version":1}`)
	if _, err := backups.Import(raw); err != nil {
		t.Fatalf("Import: %v", err)
	}

	stored, err := goals.Goals("u2")
	if err != nil {
		t.Fatalf("Goals u2: %v", err)
	}
	if len(stored) != 1 || stored[0].Title != "untouched goal" {
		t.Errorf("other user's goals disturbed: %+v", stored)
	}
}

func TestBackupImportNullGoalsLeavesStoreUntouched(t *testing.T) {
	users, goals, backups := newBackupFixture(t)
	seedUser(t, users, "u1", "runner@example.com")

	if _, err := goals.Create("u1", "existing goal", "", 7, "", nil); err != nil {
		t.Fatalf("create: %v", err)
	}

	// JSON null decodes into a slice as a silent nil; the importer must
	// reject it outright instead of replacing the stored array with [].
	raw := []byte(`{"user":{"id":"u1","email":"runner@example.com"},"goals":null,"version":1}`)
	_, err := backups.Import(raw)
	if !errors.Is(err, ErrCorruptBackup) {
		t.Fatalf("err = %v, want ErrCorruptBackup", err)
	}

	stored, err := goals.Goals("u1")
	if err != nil {
		t.Fatalf("Goals: %v", err)
	}
	if len(stored) != 1 || stored[0].Title != "existing goal" {
		t.Errorf("rejected import disturbed stored goals: %+v", stored)
	}
}

func TestBackupImportRejectsCorruptFiles(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{this is not json`},
		{"missing user", `{"goals":[],"version":1}`},
		{"user without id", `{"user":{"email":"x@example.com"},"goals":[],"version":1}`},
		{"missing goals", `{"user":{"id":"u1","email":"x@example.com"},"version":1}`},
		{"null goals", `{"user":{"id":"u1","email":"x@example.com"},"goals":null,"version":1}`},
		{"goals not an array", `{"user":{"id":"u1","email":"x@example.com"},"goals":{"id":"g1"},"version":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, backups := newBackupFixture(t)

			_, err := backups.Import([]byte(tt.raw))
			if !errors.Is(err, ErrCorruptBackup) {
				t.Errorf("err = %v, want ErrCorruptBackup", err)
			}
		})
	}
}
