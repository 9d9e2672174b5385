package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gonogoapp/gonogo/internal/model"
	"github.com/gonogoapp/gonogo/internal/repository"
	"github.com/gonogoapp/gonogo/internal/storage"
)

var ErrCorruptBackup = errors.New("corrupt backup file")

// BackupService bundles a user's full dataset into the export file format
// and restores it on import. When archive storage is configured, exports
// are additionally snapshotted off-site; archival failures never fail the
// export itself.
type BackupService struct {
	users   repository.UserRepository
	goals   repository.GoalRepository
	archive storage.Storage
}

func NewBackupService(users repository.UserRepository, goals repository.GoalRepository, archive storage.Storage) *BackupService {
	return &BackupService{
		users:   users,
		goals:   goals,
		archive: archive,
	}
}

func (s *BackupService) Export(userID string) (*model.Backup, error) {
	user, err := s.users.ByID(userID)
	if err != nil {
		return nil, err
	}

	goals, err := s.goals.Goals(userID)
	if err != nil {
		return nil, err
	}

	backup := &model.Backup{
		User:      *user,
		Goals:     goals,
		Timestamp: time.Now().UTC(),
		Version:   model.BackupVersion,
	}

	if s.archive != nil {
		s.snapshot(backup)
	}

	return backup, nil
}

// snapshot uploads the export to archive storage. Best effort only.
func (s *BackupService) snapshot(backup *model.Backup) {
	raw, err := json.Marshal(backup)
	if err != nil {
		slog.Warn("failed to encode backup snapshot", "error", err, "user_id", backup.User.ID)
		return
	}

	path := fmt.Sprintf("backups/%s/%s.json", backup.User.ID, backup.Timestamp.Format("20060102T150405Z"))
	err = s.archive.Save(path, bytes.NewReader(raw))
	if err != nil {
		slog.Warn("failed to archive backup snapshot", "error", err, "path", path)
		return
	}

	slog.Info("backup snapshot archived", "path", path)
}

// Import parses an export file and merges it into the store: the user row
// is inserted-or-replaced by id and that user's goal array is overwritten
// blindly. The repository performs no reconciliation beyond that; deciding
// whether to switch the active session stays with the caller.
func (s *BackupService) Import(raw []byte) (*model.User, error) {
	var envelope struct {
		User    *model.User     `json:"user"`
		Goals   json.RawMessage `json:"goals"`
		Version int             `json:"version"`
	}

	err := json.Unmarshal(raw, &envelope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptBackup, err)
	}
	if envelope.User == nil || envelope.User.ID == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrCorruptBackup)
	}

	// The goals field must be a literal JSON array. Absent, null, or
	// non-array values are rejected before any write: unmarshaling null
	// into a slice would quietly succeed as nil and wipe the stored array.
	goalsRaw := bytes.TrimSpace(envelope.Goals)
	if len(goalsRaw) == 0 || goalsRaw[0] != '[' {
		return nil, fmt.Errorf("%w: goals must be an array", ErrCorruptBackup)
	}

	var goals []model.Goal
	err = json.Unmarshal(goalsRaw, &goals)
	if err != nil {
		return nil, fmt.Errorf("%w: goals must be an array", ErrCorruptBackup)
	}

	user := envelope.User
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	err = s.users.Upsert(user)
	if err != nil {
		return nil, fmt.Errorf("failed to restore user: %w", err)
	}

	err = s.goals.Replace(user.ID, goals)
	if err != nil {
		return nil, fmt.Errorf("failed to restore goals: %w", err)
	}

	return user, nil
}
