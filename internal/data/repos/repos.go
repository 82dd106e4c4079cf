package repos

import (
	"gorm.io/gorm"

	"github.com/studymind/studymind-backend/internal/data/repos/documents"
	"github.com/studymind/studymind-backend/internal/platform/logger"
)

type DocumentRepo = documents.DocumentRepo
type DocumentDataRepo = documents.DocumentDataRepo
type VectorMetadataRepo = documents.VectorMetadataRepo

func NewDocumentRepo(db *gorm.DB, log *logger.Logger) DocumentRepo {
	return documents.NewDocumentRepo(db, log)
}

func NewDocumentDataRepo(db *gorm.DB, log *logger.Logger) DocumentDataRepo {
	return documents.NewDocumentDataRepo(db, log)
}

func NewVectorMetadataRepo(db *gorm.DB, log *logger.Logger) VectorMetadataRepo {
	return documents.NewVectorMetadataRepo(db, log)
}
