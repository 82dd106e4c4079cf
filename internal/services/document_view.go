package services

import (
	"encoding/json"

	"github.com/google/uuid"

	types "github.com/studymind/studymind-backend/internal/domain/documents"
)

// DocumentView is the externally visible detail representation. Derived
// collections are always present, never null, so the response shape is
// stable at every processing stage.
type DocumentView struct {
	ID                 uuid.UUID         `json:"id"`
	Name               string            `json:"name"`
	Status             types.Status      `json:"status"`
	Progress           int               `json:"progress"`
	FileURL            string            `json:"fileUrl"`
	Topics             []string          `json:"topics"`
	Explanations       map[string]string `json:"explanations"`
	MindTree           map[string]any    `json:"mindTree"`
	PredictedQuestions []string          `json:"predictedQuestions"`
}

// AssembleDocumentView is pure composition; it performs no I/O. Malformed
// stored JSON degrades to the empty default for that field.
func AssembleDocumentView(doc *types.Document, data *types.DocumentData, progress int, fileURL string) DocumentView {
	view := DocumentView{
		ID:                 doc.ID,
		Name:               doc.Name,
		Status:             doc.Status,
		Progress:           progress,
		FileURL:            fileURL,
		Topics:             []string{},
		Explanations:       map[string]string{},
		MindTree:           map[string]any{},
		PredictedQuestions: []string{},
	}
	if data == nil {
		return view
	}

	if len(data.Topics) > 0 {
		var topics []string
		if err := json.Unmarshal(data.Topics, &topics); err == nil && topics != nil {
			view.Topics = topics
		}
	}
	if len(data.Explanations) > 0 {
		var explanations map[string]string
		if err := json.Unmarshal(data.Explanations, &explanations); err == nil && explanations != nil {
			view.Explanations = explanations
		}
	}
	if len(data.MindTree) > 0 {
		var mindTree map[string]any
		if err := json.Unmarshal(data.MindTree, &mindTree); err == nil && mindTree != nil {
			view.MindTree = mindTree
		}
	}
	if len(data.PredictedQuestions) > 0 {
		var questions []string
		if err := json.Unmarshal(data.PredictedQuestions, &questions); err == nil && questions != nil {
			view.PredictedQuestions = questions
		}
	}
	return view
}
