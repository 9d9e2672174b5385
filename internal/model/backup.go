package model

import "time"

// BackupVersion is the current export file format version. There is no
// migration machinery behind it yet; readers only record what they parsed.
const BackupVersion = 1

// Backup is the export file format: the user record plus their full goal
// array, UTF-8 JSON, RFC 3339 timestamp.
type Backup struct {
	User      User      `json:"user"`
	Goals     []Goal    `json:"goals"`
	Timestamp time.Time `json:"timestamp"`
	Version   int       `json:"version"`
}
