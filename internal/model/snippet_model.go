package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type Snippet struct {
	Id                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InputText          string          `gorm:"column:input_text;type:text"`
	Source             string          `gorm:"column:source;index"`
	SourceDesc         string          `gorm:"column:source_desc"`
	ChunkEmbedding     pgvector.Vector `gorm:"column:chunk_embedding;type:vector(768)"`
	ChunkEmbedding1024 pgvector.Vector `gorm:"column:chunk_embedding_1024;type:vector(1024)"`
	CreatedAt          time.Time       `gorm:"autoCreateTime"`
}

func (Snippet) TableName() string {
	return "vector_store"
}
