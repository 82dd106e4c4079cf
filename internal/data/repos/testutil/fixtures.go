package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/studymind/studymind-backend/internal/domain/documents"
)

func SeedDocument(tb testing.TB, ctx context.Context, tx *gorm.DB, userID string, status types.Status) *types.Document {
	tb.Helper()
	doc := &types.Document{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      "notes.pdf",
		Status:    status,
		FileURL:   "https://storage.googleapis.com/studymind-files/" + userID + "/notes.pdf",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(doc).Error; err != nil {
		tb.Fatalf("seed document: %v", err)
	}
	return doc
}

func SeedDocumentData(tb testing.TB, ctx context.Context, tx *gorm.DB, docID uuid.UUID) *types.DocumentData {
	tb.Helper()
	row := &types.DocumentData{
		ID:                 uuid.New(),
		DocumentID:         docID,
		Topics:             datatypes.JSON([]byte(`["algebra"]`)),
		Explanations:       datatypes.JSON([]byte(`{"algebra":"solving for x"}`)),
		MindTree:           datatypes.JSON([]byte(`{"root":{}}`)),
		PredictedQuestions: datatypes.JSON([]byte(`["what is x?"]`)),
	}
	if err := tx.WithContext(ctx).Create(row).Error; err != nil {
		tb.Fatalf("seed document data: %v", err)
	}
	return row
}

func SeedVectorMetadata(tb testing.TB, ctx context.Context, tx *gorm.DB, docID uuid.UUID) *types.VectorMetadata {
	tb.Helper()
	row := &types.VectorMetadata{
		ID:         uuid.New(),
		DocumentID: docID,
		Payload:    datatypes.JSON([]byte(`{"chunk":0}`)),
	}
	if err := tx.WithContext(ctx).Create(row).Error; err != nil {
		tb.Fatalf("seed vector metadata: %v", err)
	}
	return row
}
