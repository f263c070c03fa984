package entity

import (
	"time"

	"github.com/google/uuid"
)

// Snippet is one retrievable CV fragment. Source carries the intent
// vocabulary label it was ingested under; SourceDesc is the human
// facing document name. Both embedding columns are populated at ingest
// so either dimension can serve queries.
type Snippet struct {
	Id            uuid.UUID
	InputText     string
	Source        string
	SourceDesc    string
	Embedding768  []float32
	Embedding1024 []float32
	CreatedAt     time.Time
}
