package documents

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/studymind/studymind-backend/internal/domain/documents"
	"github.com/studymind/studymind-backend/internal/platform/dbctx"
	"github.com/studymind/studymind-backend/internal/platform/logger"
)

type DocumentDataRepo interface {
	Create(dbc dbctx.Context, rows []*types.DocumentData) ([]*types.DocumentData, error)
	GetByDocumentID(dbc dbctx.Context, docID uuid.UUID) (*types.DocumentData, error)
	DeleteByDocumentID(dbc dbctx.Context, docID uuid.UUID) error
}

type documentDataRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentDataRepo(db *gorm.DB, baseLog *logger.Logger) DocumentDataRepo {
	repoLog := baseLog.With("repo", "DocumentDataRepo")
	return &documentDataRepo{db: db, log: repoLog}
}

func (r *documentDataRepo) Create(dbc dbctx.Context, rows []*types.DocumentData) ([]*types.DocumentData, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.DocumentData{}, nil
	}

	if err := transaction.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *documentDataRepo) GetByDocumentID(dbc dbctx.Context, docID uuid.UUID) (*types.DocumentData, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var rows []*types.DocumentData
	if err := transaction.WithContext(dbc.Ctx).
		Where("document_id = ?", docID).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// DeleteByDocumentID is a no-op when no rows remain, so retried deletes
// stay idempotent.
func (r *documentDataRepo) DeleteByDocumentID(dbc dbctx.Context, docID uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(dbc.Ctx).
		Where("document_id = ?", docID).
		Delete(&types.DocumentData{}).Error; err != nil {
		return err
	}
	return nil
}
