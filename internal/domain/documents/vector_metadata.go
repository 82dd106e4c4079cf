package documents

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// VectorMetadata is indexing metadata written by the processing pipeline.
// Its payload is opaque here; the rows exist as a deletion obligation owned
// by the parent document.
type VectorMetadata struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	DocumentID uuid.UUID `gorm:"column:document_id;type:uuid;not null;index" json:"documentId"`

	Payload datatypes.JSON `gorm:"column:payload;type:jsonb" json:"payload"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
}

func (VectorMetadata) TableName() string { return "vector_metadata" }
