package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/gonogoapp/gonogo/internal/ctxkeys"
	"github.com/gonogoapp/gonogo/internal/model"
	"github.com/gonogoapp/gonogo/internal/service"
)

// maxImportBytes caps uploaded backup files. Datasets are tens of records;
// anything near this limit is not a real backup.
const maxImportBytes = 8 << 20

type BackupHandler struct {
	backupService *service.BackupService
}

func NewBackupHandler(backupService *service.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

type importResponse struct {
	User *model.User `json:"user"`
	// UserSwitched signals the client that the imported dataset belongs to
	// a different user than the session; prompting about switching is the
	// client's job, the server performs no reconciliation.
	UserSwitched bool `json:"userSwitched"`
}

func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	backup, err := h.backupService.Export(user.ID)
	if err != nil {
		slog.Error("failed to export backup", "error", err, "user_id", user.ID)
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=gonogo-backup.json")

	err = json.NewEncoder(w).Encode(backup)
	if err != nil {
		slog.Error("failed to encode backup", "error", err, "user_id", user.ID)
	}
}

func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	imported, err := h.backupService.Import(raw)
	if err != nil {
		respondError(w, err)
		return
	}

	imported.PasswordHash = nil
	writeJSON(w, http.StatusOK, importResponse{
		User:         imported,
		UserSwitched: imported.ID != user.ID,
	})
}
