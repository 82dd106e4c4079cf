package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/studymind/studymind-backend/internal/data/repos"
	types "github.com/studymind/studymind-backend/internal/domain/documents"
	"github.com/studymind/studymind-backend/internal/platform/apierr"
	"github.com/studymind/studymind-backend/internal/platform/dbctx"
	"github.com/studymind/studymind-backend/internal/platform/logger"
)

// DocumentService owns the document lifecycle: listing, authorized detail
// retrieval, and deletion across the relational store, the blob store and
// the progress cache.
type DocumentService interface {
	List(ctx context.Context, ownerID string) ([]*types.Document, error)
	GetDetail(ctx context.Context, docID uuid.UUID, callerID string) (*DocumentView, error)
	Delete(ctx context.Context, docID uuid.UUID, callerID string) error
}

type documentService struct {
	db           *gorm.DB
	log          *logger.Logger
	documentRepo repos.DocumentRepo
	dataRepo     repos.DocumentDataRepo
	vectorRepo   repos.VectorMetadataRepo
	fileService  FileService
	progress     ProgressService
}

func NewDocumentService(
	db *gorm.DB,
	baseLog *logger.Logger,
	documentRepo repos.DocumentRepo,
	dataRepo repos.DocumentDataRepo,
	vectorRepo repos.VectorMetadataRepo,
	fileService FileService,
	progress ProgressService,
) DocumentService {
	serviceLog := baseLog.With("service", "DocumentService")
	return &documentService{
		db:           db,
		log:          serviceLog,
		documentRepo: documentRepo,
		dataRepo:     dataRepo,
		vectorRepo:   vectorRepo,
		fileService:  fileService,
		progress:     progress,
	}
}

func (ds *documentService) List(ctx context.Context, ownerID string) ([]*types.Document, error) {
	docs, err := ds.documentRepo.GetByUserID(dbctx.Context{Ctx: ctx}, ownerID)
	if err != nil {
		return nil, apierr.Internal("list_documents_failed", err)
	}
	if docs == nil {
		docs = []*types.Document{}
	}
	return docs, nil
}

func (ds *documentService) GetDetail(ctx context.Context, docID uuid.UUID, callerID string) (*DocumentView, error) {
	doc, err := ds.documentRepo.GetByIDWithData(dbctx.Context{Ctx: ctx}, docID)
	if err != nil {
		return nil, apierr.Internal("load_document_failed", err)
	}
	if doc == nil {
		// Covers both a never-existing id and a record deleted between
		// request arrival and this load.
		return nil, apierr.NotFound("document_not_found")
	}
	if doc.UserID != callerID {
		return nil, apierr.Forbidden("document_forbidden")
	}

	// Progress and signed URL come from independent stores; fetch them
	// concurrently. Both degrade internally and never fail the request.
	var (
		progress int
		fileURL  string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		progress = ds.progress.Estimate(gctx, doc.ID, doc.Status)
		return nil
	})
	g.Go(func() error {
		fileURL = ds.fileService.SignedFileURL(doc.FileURL)
		return nil
	})
	_ = g.Wait()

	view := AssembleDocumentView(doc, doc.DocumentData, progress, fileURL)
	return &view, nil
}

// Delete unwinds a document across all three stores. The blob goes first
// and its failure is swallowed, then vector metadata rows, then document
// data rows, then the document row itself. The document row is deleted last:
// its presence is the single source of truth, so a crash mid-sequence
// leaves a retryable record rather than a dangling one.
func (ds *documentService) Delete(ctx context.Context, docID uuid.UUID, callerID string) error {
	dbc := dbctx.Context{Ctx: ctx}

	doc, err := ds.documentRepo.GetByID(dbc, docID)
	if err != nil {
		return apierr.Internal("load_document_failed", err)
	}
	if doc == nil {
		return apierr.NotFound("document_not_found")
	}
	if doc.UserID != callerID {
		return apierr.Forbidden("document_forbidden")
	}

	if doc.FileURL != "" {
		if err := ds.fileService.DeleteStoredFile(ctx, doc.FileURL); err != nil {
			// The user-facing delete must still succeed; a leaked blob is
			// preferable to a record stuck behind a failing blob store.
			ds.log.Error("blob delete failed, continuing", "document_id", docID, "error", err)
		}
	}

	if err := ds.vectorRepo.DeleteByDocumentID(dbc, docID); err != nil {
		return apierr.Internal("delete_vector_metadata_failed", fmt.Errorf("delete vector metadata: %w", err))
	}
	if err := ds.dataRepo.DeleteByDocumentID(dbc, docID); err != nil {
		return apierr.Internal("delete_document_data_failed", fmt.Errorf("delete document data: %w", err))
	}
	if err := ds.documentRepo.DeleteByID(dbc, docID); err != nil {
		// Never swallowed: a failed row delete after a blob delete is an
		// unrecoverable dangling record if reported as success.
		return apierr.Internal("delete_document_failed", fmt.Errorf("delete document row: %w", err))
	}

	ds.log.Info("document deleted", "document_id", docID)
	return nil
}
