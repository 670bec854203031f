package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edudocs-api/internal/models"
)

func reviewDocuments() []models.Document {
	return []models.Document{
		{ID: "doc-1", StudentName: "Alice Ivanova", DocumentType: models.DocumentTypeTranscript, Status: models.DocumentStatusSubmitted},
		{ID: "doc-2", StudentName: "Boris Petrov", DocumentType: models.DocumentTypeThesis, Status: models.DocumentStatusChecked},
		{ID: "doc-3", StudentName: "Alice Ivanova", DocumentType: models.DocumentTypeLeave, Status: models.DocumentStatusSigned},
		{ID: "doc-4", StudentName: "Alice Ivanova", DocumentType: models.DocumentTypeTranscript, Status: models.DocumentStatusRejected},
	}
}

func TestFilterDocuments(t *testing.T) {
	docs := reviewDocuments()

	require.Len(t, FilterDocuments(docs, DocumentFilter{}), 4)

	byStudent := FilterDocuments(docs, DocumentFilter{StudentName: "Alice Ivanova"})
	require.Len(t, byStudent, 3)
	require.Equal(t, "doc-1", byStudent[0].ID)
	require.Equal(t, "doc-4", byStudent[2].ID)

	combined := FilterDocuments(docs, DocumentFilter{
		StudentName: "Alice Ivanova",
		Type:        models.DocumentTypeTranscript,
		Status:      models.DocumentStatusRejected,
	})
	require.Len(t, combined, 1)
	require.Equal(t, "doc-4", combined[0].ID)

	require.Empty(t, FilterDocuments(docs, DocumentFilter{Type: models.DocumentTypeRecommendation}))
}

func TestSummarizeDocuments(t *testing.T) {
	summary := SummarizeDocuments(reviewDocuments())
	require.Equal(t, DocumentSummary{Total: 4, Submitted: 1, Checked: 1, Signed: 1, Rejected: 1}, summary)
	require.Equal(t, DocumentSummary{}, SummarizeDocuments(nil))
}

func TestStudentNames(t *testing.T) {
	require.Equal(t, []string{"Alice Ivanova", "Boris Petrov"}, StudentNames(reviewDocuments()))
	require.Empty(t, StudentNames(nil))
}
