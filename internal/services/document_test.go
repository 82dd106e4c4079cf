package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	types "github.com/studymind/studymind-backend/internal/domain/documents"
	"github.com/studymind/studymind-backend/internal/platform/apierr"
	"github.com/studymind/studymind-backend/internal/platform/dbctx"
)

type fakeDocumentRepo struct {
	docs map[uuid.UUID]*types.Document

	deleteErr error
	order     *[]string
}

func (f *fakeDocumentRepo) Create(dbc dbctx.Context, docs []*types.Document) ([]*types.Document, error) {
	for _, d := range docs {
		f.docs[d.ID] = d
	}
	return docs, nil
}

func (f *fakeDocumentRepo) GetByUserID(dbc dbctx.Context, userID string) ([]*types.Document, error) {
	var out []*types.Document
	for _, d := range f.docs {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDocumentRepo) GetByID(dbc dbctx.Context, docID uuid.UUID) (*types.Document, error) {
	return f.docs[docID], nil
}

func (f *fakeDocumentRepo) GetByIDWithData(dbc dbctx.Context, docID uuid.UUID) (*types.Document, error) {
	return f.docs[docID], nil
}

func (f *fakeDocumentRepo) DeleteByID(dbc dbctx.Context, docID uuid.UUID) error {
	if f.order != nil {
		*f.order = append(*f.order, "document")
	}
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.docs, docID)
	return nil
}

type fakeDocumentDataRepo struct {
	rows  map[uuid.UUID]*types.DocumentData
	order *[]string

	deleteCalls int
}

func (f *fakeDocumentDataRepo) Create(dbc dbctx.Context, rows []*types.DocumentData) ([]*types.DocumentData, error) {
	for _, r := range rows {
		f.rows[r.DocumentID] = r
	}
	return rows, nil
}

func (f *fakeDocumentDataRepo) GetByDocumentID(dbc dbctx.Context, docID uuid.UUID) (*types.DocumentData, error) {
	return f.rows[docID], nil
}

func (f *fakeDocumentDataRepo) DeleteByDocumentID(dbc dbctx.Context, docID uuid.UUID) error {
	f.deleteCalls++
	if f.order != nil {
		*f.order = append(*f.order, "document_data")
	}
	delete(f.rows, docID)
	return nil
}

type fakeVectorMetadataRepo struct {
	rows  map[uuid.UUID][]*types.VectorMetadata
	order *[]string

	deleteCalls int
}

func (f *fakeVectorMetadataRepo) Create(dbc dbctx.Context, rows []*types.VectorMetadata) ([]*types.VectorMetadata, error) {
	for _, r := range rows {
		f.rows[r.DocumentID] = append(f.rows[r.DocumentID], r)
	}
	return rows, nil
}

func (f *fakeVectorMetadataRepo) GetByDocumentID(dbc dbctx.Context, docID uuid.UUID) ([]*types.VectorMetadata, error) {
	return f.rows[docID], nil
}

func (f *fakeVectorMetadataRepo) DeleteByDocumentID(dbc dbctx.Context, docID uuid.UUID) error {
	f.deleteCalls++
	if f.order != nil {
		*f.order = append(*f.order, "vector_metadata")
	}
	delete(f.rows, docID)
	return nil
}

type fakeFileService struct {
	deleteErr error
	order     *[]string

	deletedRefs []string
}

func (f *fakeFileService) SignedFileURL(storedRef string) string {
	if storedRef == "" {
		return ""
	}
	return "https://signed.example/" + storedRef
}

func (f *fakeFileService) DeleteStoredFile(ctx context.Context, storedRef string) error {
	if f.order != nil {
		*f.order = append(*f.order, "blob")
	}
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedRefs = append(f.deletedRefs, storedRef)
	return nil
}

type fixedProgress struct {
	value int
}

func (f fixedProgress) Estimate(ctx context.Context, docID uuid.UUID, status types.Status) int {
	return f.value
}

type lifecycleFixture struct {
	svc        DocumentService
	docRepo    *fakeDocumentRepo
	dataRepo   *fakeDocumentDataRepo
	vectorRepo *fakeVectorMetadataRepo
	files      *fakeFileService
	order      []string
}

func newLifecycleFixture(t *testing.T, progress int) *lifecycleFixture {
	t.Helper()
	fx := &lifecycleFixture{}
	fx.docRepo = &fakeDocumentRepo{docs: map[uuid.UUID]*types.Document{}, order: &fx.order}
	fx.dataRepo = &fakeDocumentDataRepo{rows: map[uuid.UUID]*types.DocumentData{}, order: &fx.order}
	fx.vectorRepo = &fakeVectorMetadataRepo{rows: map[uuid.UUID][]*types.VectorMetadata{}, order: &fx.order}
	fx.files = &fakeFileService{order: &fx.order}
	fx.svc = NewDocumentService(
		nil,
		testLogger(t),
		fx.docRepo,
		fx.dataRepo,
		fx.vectorRepo,
		fx.files,
		fixedProgress{value: progress},
	)
	return fx
}

func (fx *lifecycleFixture) seedDocument(userID string, status types.Status, fileURL string) *types.Document {
	doc := &types.Document{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      "notes.pdf",
		Status:    status,
		FileURL:   fileURL,
		CreatedAt: time.Now().UTC(),
	}
	fx.docRepo.docs[doc.ID] = doc
	return doc
}

func mustAPIErr(t *testing.T, err error, wantStatus int) *apierr.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("want api error with status %d, got nil", wantStatus)
	}
	ae, ok := apierr.As(err)
	if !ok {
		t.Fatalf("want *apierr.Error, got %T: %v", err, err)
	}
	if ae.Status != wantStatus {
		t.Fatalf("status: want=%d got=%d (code=%q)", wantStatus, ae.Status, ae.Code)
	}
	return ae
}

func TestGetDetailNotFound(t *testing.T) {
	fx := newLifecycleFixture(t, 0)
	_, err := fx.svc.GetDetail(context.Background(), uuid.New(), "u1")
	mustAPIErr(t, err, 404)
}

func TestGetDetailForbiddenForNonOwner(t *testing.T) {
	fx := newLifecycleFixture(t, 0)
	doc := fx.seedDocument("u1", types.StatusReady, "")

	_, err := fx.svc.GetDetail(context.Background(), doc.ID, "u2")
	ae := mustAPIErr(t, err, 403)
	if ae.Code != "document_forbidden" {
		t.Fatalf("code: got=%q", ae.Code)
	}
}

func TestGetDetailAssemblesView(t *testing.T) {
	fx := newLifecycleFixture(t, 42)
	doc := fx.seedDocument("u1", types.StatusProcessing, "https://host/BUCKET/u1/file.pdf")
	doc.DocumentData = &types.DocumentData{
		DocumentID: doc.ID,
		Topics:     datatypes.JSON([]byte(`["algebra"]`)),
	}

	view, err := fx.svc.GetDetail(context.Background(), doc.ID, "u1")
	if err != nil {
		t.Fatalf("GetDetail: %v", err)
	}
	if view.Progress != 42 {
		t.Fatalf("progress: want=42 got=%d", view.Progress)
	}
	if view.FileURL != "https://signed.example/https://host/BUCKET/u1/file.pdf" {
		t.Fatalf("file url: got=%q", view.FileURL)
	}
	if len(view.Topics) != 1 || view.Topics[0] != "algebra" {
		t.Fatalf("topics: %#v", view.Topics)
	}
}

func TestGetDetailWithoutDerivedData(t *testing.T) {
	fx := newLifecycleFixture(t, 0)
	doc := fx.seedDocument("u1", types.StatusPending, "")

	view, err := fx.svc.GetDetail(context.Background(), doc.ID, "u1")
	if err != nil {
		t.Fatalf("GetDetail: %v", err)
	}
	if view.Progress != 0 {
		t.Fatalf("progress: want=0 got=%d", view.Progress)
	}
	if view.Topics == nil || view.Explanations == nil || view.MindTree == nil || view.PredictedQuestions == nil {
		t.Fatalf("derived collections must be empty-not-null: %+v", view)
	}
}

func TestDeleteNotFoundAndForbidden(t *testing.T) {
	fx := newLifecycleFixture(t, 0)
	doc := fx.seedDocument("u1", types.StatusReady, "")

	mustAPIErr(t, fx.svc.Delete(context.Background(), uuid.New(), "u1"), 404)
	mustAPIErr(t, fx.svc.Delete(context.Background(), doc.ID, "u2"), 403)

	if _, ok := fx.docRepo.docs[doc.ID]; !ok {
		t.Fatalf("document must survive rejected deletes")
	}
}

func TestDeleteRemovesStoresInOrder(t *testing.T) {
	fx := newLifecycleFixture(t, 0)
	doc := fx.seedDocument("u1", types.StatusReady, "https://host/BUCKET/u1/file.pdf")
	fx.dataRepo.rows[doc.ID] = &types.DocumentData{DocumentID: doc.ID}
	fx.vectorRepo.rows[doc.ID] = []*types.VectorMetadata{{DocumentID: doc.ID}}

	if err := fx.svc.Delete(context.Background(), doc.ID, "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	want := []string{"blob", "vector_metadata", "document_data", "document"}
	if len(fx.order) != len(want) {
		t.Fatalf("delete order: want=%v got=%v", want, fx.order)
	}
	for i := range want {
		if fx.order[i] != want[i] {
			t.Fatalf("delete order: want=%v got=%v", want, fx.order)
		}
	}
	if _, ok := fx.docRepo.docs[doc.ID]; ok {
		t.Fatalf("document row must be gone")
	}
}

func TestDeleteWithoutFileSkipsBlob(t *testing.T) {
	fx := newLifecycleFixture(t, 0)
	doc := fx.seedDocument("u1", types.StatusPending, "")

	if err := fx.svc.Delete(context.Background(), doc.ID, "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	for _, step := range fx.order {
		if step == "blob" {
			t.Fatalf("blob delete attempted without a file reference")
		}
	}
}

func TestDeleteSwallowsBlobFailure(t *testing.T) {
	fx := newLifecycleFixture(t, 0)
	fx.files.deleteErr = fmt.Errorf("blob store unavailable")
	doc := fx.seedDocument("u1", types.StatusReady, "https://host/BUCKET/u1/file.pdf")

	if err := fx.svc.Delete(context.Background(), doc.ID, "u1"); err != nil {
		t.Fatalf("Delete must succeed despite blob failure: %v", err)
	}
	if _, ok := fx.docRepo.docs[doc.ID]; ok {
		t.Fatalf("document row must be gone after swallowed blob failure")
	}
}

func TestDeleteSurfacesFinalRowFailure(t *testing.T) {
	fx := newLifecycleFixture(t, 0)
	fx.docRepo.deleteErr = fmt.Errorf("deadlock detected")
	doc := fx.seedDocument("u1", types.StatusReady, "")

	ae := mustAPIErr(t, fx.svc.Delete(context.Background(), doc.ID, "u1"), 500)
	if ae.Code != "delete_document_failed" {
		t.Fatalf("code: got=%q", ae.Code)
	}
}

func TestDeleteDerivedRowsIdempotent(t *testing.T) {
	fx := newLifecycleFixture(t, 0)
	doc := fx.seedDocument("u1", types.StatusReady, "")

	// No derived rows exist; both deleteMany calls must no-op cleanly.
	if err := fx.svc.Delete(context.Background(), doc.ID, "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if fx.dataRepo.deleteCalls != 1 || fx.vectorRepo.deleteCalls != 1 {
		t.Fatalf("derived delete calls: data=%d vector=%d", fx.dataRepo.deleteCalls, fx.vectorRepo.deleteCalls)
	}
}

func TestListReturnsEmptySliceForUnknownOwner(t *testing.T) {
	fx := newLifecycleFixture(t, 0)
	docs, err := fx.svc.List(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if docs == nil {
		t.Fatalf("List must return an empty slice, not nil")
	}
	if len(docs) != 0 {
		t.Fatalf("docs: %v", docs)
	}
}

func TestEndToEndDetailScenario(t *testing.T) {
	fx := newLifecycleFixture(t, 42)
	doc := fx.seedDocument("u1", types.StatusProcessing, "https://host/BUCKET/u1/file.pdf")

	view, err := fx.svc.GetDetail(context.Background(), doc.ID, "u1")
	if err != nil {
		t.Fatalf("GetDetail as owner: %v", err)
	}
	if view.Progress != 42 {
		t.Fatalf("progress: want=42 got=%d", view.Progress)
	}
	if view.FileURL == doc.FileURL {
		t.Fatalf("file url must be the signed derivation, got stored reference")
	}

	_, err = fx.svc.GetDetail(context.Background(), doc.ID, "u2")
	mustAPIErr(t, err, 403)
}
