package documents

import (
	"time"

	"github.com/google/uuid"
)

// Status values are written by the external processing pipeline; this
// service only branches on them.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusReady      Status = "ready"
	StatusFailed     Status = "failed"
)

type Document struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID string    `gorm:"column:user_id;not null;index" json:"userId"`
	Name   string    `gorm:"column:name;not null" json:"name"`
	Status Status    `gorm:"column:status;not null;default:'pending'" json:"status"`

	// FileURL is the public-form reference written at upload time. It is not
	// safe to serve directly; reads go through a signed URL derived from it.
	FileURL string `gorm:"column:file_url" json:"fileUrl"`

	DocumentData *DocumentData `gorm:"foreignKey:DocumentID;references:ID" json:"-"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Document) TableName() string { return "document" }
