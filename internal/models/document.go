package models

import (
	"strings"
	"time"
)

// DocumentStatus tracks where a document is in review.
type DocumentStatus string

const (
	// DocumentStatusSubmitted is the initial status of every document.
	DocumentStatusSubmitted DocumentStatus = "submitted"
	// DocumentStatusChecked indicates a reviewer looked at the document.
	DocumentStatusChecked DocumentStatus = "checked"
	// DocumentStatusSigned indicates the document was approved and signed.
	DocumentStatusSigned DocumentStatus = "signed"
	// DocumentStatusRejected indicates the document was turned down.
	DocumentStatusRejected DocumentStatus = "rejected"
)

var statusLabels = map[DocumentStatus]string{
	DocumentStatusSubmitted: "Submitted",
	DocumentStatusChecked:   "Checked",
	DocumentStatusSigned:    "Signed",
	DocumentStatusRejected:  "Rejected",
}

// Valid reports whether the status belongs to the closed set.
func (s DocumentStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the human readable status.
func (s DocumentStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// ParseDocumentStatus converts user input into a DocumentStatus.
func ParseDocumentStatus(value string) (DocumentStatus, bool) {
	status := DocumentStatus(strings.ToLower(strings.TrimSpace(value)))
	return status, status.Valid()
}

// DocumentType is the kind of request a student files.
type DocumentType string

const (
	DocumentTypeTranscript     DocumentType = "transcript"
	DocumentTypeLeave          DocumentType = "leave"
	DocumentTypeThesis         DocumentType = "thesis"
	DocumentTypeRecommendation DocumentType = "recommendation"
)

var typeLabels = map[DocumentType]string{
	DocumentTypeTranscript:     "Transcript request",
	DocumentTypeLeave:          "Leave application",
	DocumentTypeThesis:         "Thesis topic",
	DocumentTypeRecommendation: "Recommendation request",
}

// Valid reports whether the type belongs to the closed set.
func (t DocumentType) Valid() bool {
	_, ok := typeLabels[t]
	return ok
}

// Label returns the human readable document type.
func (t DocumentType) Label() string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return string(t)
}

// ParseDocumentType converts user input into a DocumentType.
func ParseDocumentType(value string) (DocumentType, bool) {
	docType := DocumentType(strings.ToLower(strings.TrimSpace(value)))
	return docType, docType.Valid()
}

// Document is a file a student submitted for review.
//
// StudentName is copied from the student at submission time and is not kept
// in sync afterwards. Only Status and UpdatedAt change after creation.
type Document struct {
	ID           string         `json:"id"`
	StudentID    string         `json:"student_id"`
	StudentName  string         `json:"student_name"`
	FileName     string         `json:"file_name"`
	FileURL      string         `json:"file_url"`
	Description  string         `json:"description"`
	DocumentType DocumentType   `json:"document_type"`
	Status       DocumentStatus `json:"status"`
	SubmittedAt  time.Time      `json:"submitted_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// NewDocument carries the caller supplied fields of a submission.
type NewDocument struct {
	StudentID    string       `validate:"required"`
	StudentName  string       `validate:"max=255"`
	Description  string       `validate:"required,max=2000"`
	DocumentType DocumentType `validate:"required,oneof=transcript leave thesis recommendation"`
}

// FileBlob is an uploaded artifact held in memory.
type FileBlob struct {
	Name string
	Data []byte
}

// VisibleTo narrows documents to what the user may see: students get their
// own documents, teachers get everything. Order is preserved.
func VisibleTo(user User, documents []Document) []Document {
	if user.IsTeacher() {
		visible := make([]Document, len(documents))
		copy(visible, documents)
		return visible
	}

	visible := make([]Document, 0, len(documents))
	for _, doc := range documents {
		if doc.StudentID == user.ID {
			visible = append(visible, doc)
		}
	}
	return visible
}
