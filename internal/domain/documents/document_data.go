package documents

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DocumentData holds the artifacts the processing pipeline derives from a
// document. At most one row per document.
type DocumentData struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	DocumentID uuid.UUID `gorm:"column:document_id;type:uuid;not null;uniqueIndex" json:"documentId"`

	Topics             datatypes.JSON `gorm:"column:topics;type:jsonb" json:"topics"`
	Explanations       datatypes.JSON `gorm:"column:explanations;type:jsonb" json:"explanations"`
	MindTree           datatypes.JSON `gorm:"column:mind_tree;type:jsonb" json:"mindTree"`
	PredictedQuestions datatypes.JSON `gorm:"column:predicted_questions;type:jsonb" json:"predictedQuestions"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (DocumentData) TableName() string { return "document_data" }
