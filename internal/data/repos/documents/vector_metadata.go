package documents

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/studymind/studymind-backend/internal/domain/documents"
	"github.com/studymind/studymind-backend/internal/platform/dbctx"
	"github.com/studymind/studymind-backend/internal/platform/logger"
)

type VectorMetadataRepo interface {
	Create(dbc dbctx.Context, rows []*types.VectorMetadata) ([]*types.VectorMetadata, error)
	GetByDocumentID(dbc dbctx.Context, docID uuid.UUID) ([]*types.VectorMetadata, error)
	DeleteByDocumentID(dbc dbctx.Context, docID uuid.UUID) error
}

type vectorMetadataRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVectorMetadataRepo(db *gorm.DB, baseLog *logger.Logger) VectorMetadataRepo {
	repoLog := baseLog.With("repo", "VectorMetadataRepo")
	return &vectorMetadataRepo{db: db, log: repoLog}
}

func (r *vectorMetadataRepo) Create(dbc dbctx.Context, rows []*types.VectorMetadata) ([]*types.VectorMetadata, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.VectorMetadata{}, nil
	}

	if err := transaction.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *vectorMetadataRepo) GetByDocumentID(dbc dbctx.Context, docID uuid.UUID) ([]*types.VectorMetadata, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.VectorMetadata
	if err := transaction.WithContext(dbc.Ctx).
		Where("document_id = ?", docID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *vectorMetadataRepo) DeleteByDocumentID(dbc dbctx.Context, docID uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(dbc.Ctx).
		Where("document_id = ?", docID).
		Delete(&types.VectorMetadata{}).Error; err != nil {
		return err
	}
	return nil
}
