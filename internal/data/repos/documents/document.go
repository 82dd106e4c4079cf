package documents

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/studymind/studymind-backend/internal/domain/documents"
	"github.com/studymind/studymind-backend/internal/platform/dbctx"
	"github.com/studymind/studymind-backend/internal/platform/logger"
)

type DocumentRepo interface {
	Create(dbc dbctx.Context, docs []*types.Document) ([]*types.Document, error)
	GetByUserID(dbc dbctx.Context, userID string) ([]*types.Document, error)
	GetByID(dbc dbctx.Context, docID uuid.UUID) (*types.Document, error)
	GetByIDWithData(dbc dbctx.Context, docID uuid.UUID) (*types.Document, error)
	DeleteByID(dbc dbctx.Context, docID uuid.UUID) error
}

type documentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentRepo(db *gorm.DB, baseLog *logger.Logger) DocumentRepo {
	repoLog := baseLog.With("repo", "DocumentRepo")
	return &documentRepo{db: db, log: repoLog}
}

func (r *documentRepo) Create(dbc dbctx.Context, docs []*types.Document) ([]*types.Document, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if len(docs) == 0 {
		return []*types.Document{}, nil
	}

	if err := transaction.WithContext(dbc.Ctx).Create(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *documentRepo) GetByUserID(dbc dbctx.Context, userID string) ([]*types.Document, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Document
	if err := transaction.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *documentRepo) GetByID(dbc dbctx.Context, docID uuid.UUID) (*types.Document, error) {
	return r.getByID(dbc, docID, false)
}

func (r *documentRepo) GetByIDWithData(dbc dbctx.Context, docID uuid.UUID) (*types.Document, error) {
	return r.getByID(dbc, docID, true)
}

func (r *documentRepo) getByID(dbc dbctx.Context, docID uuid.UUID, withData bool) (*types.Document, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(dbc.Ctx)
	if withData {
		query = query.Preload("DocumentData")
	}

	var doc types.Document
	if err := query.First(&doc, "id = ?", docID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepo) DeleteByID(dbc dbctx.Context, docID uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", docID).
		Delete(&types.Document{}).Error; err != nil {
		return err
	}
	return nil
}
