package model

import (
	"encoding/json"
	"time"
)

// CommentType classifies a milestone comment. Records written before the
// field existed carry no type; deserialization maps absence to the explicit
// default CommentTypeLog so callers never see a zero value.
type CommentType string

const (
	CommentTypeLog        CommentType = "log"
	CommentTypeReflection CommentType = "reflection"
)

// Comment is an append-only note on a milestone. No update-in-place exists;
// comments are added and deleted whole.
type Comment struct {
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	Type      CommentType `json:"type"`
	CreatedAt time.Time   `json:"createdAt"`
}

// UnmarshalJSON fills in the default classification for legacy records
// persisted without a type field.
func (c *Comment) UnmarshalJSON(data []byte) error {
	type alias Comment
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if a.Type == "" {
		a.Type = CommentTypeLog
	}
	*c = Comment(a)
	return nil
}
