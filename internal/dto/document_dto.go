package dto

import (
	"strings"
	"time"

	"github.com/noah-isme/edudocs-api/internal/models"
	"github.com/noah-isme/edudocs-api/internal/service"
	"github.com/noah-isme/edudocs-api/internal/storage"
)

// BlobPathPrefix is where transient uploads are served from.
const BlobPathPrefix = "/api/v1/blobs/"

// DocumentCreateRequest describes the multipart payload for a submission.
type DocumentCreateRequest struct {
	Description  string `form:"description" validate:"required,max=2000"`
	DocumentType string `form:"document_type" validate:"required,oneof=transcript leave thesis recommendation"`
}

// Normalize trims free text and folds the type to its canonical spelling.
func (r *DocumentCreateRequest) Normalize() {
	r.Description = strings.TrimSpace(r.Description)
	docType, _ := models.ParseDocumentType(r.DocumentType)
	r.DocumentType = string(docType)
}

// DocumentStatusUpdateRequest is used by reviewers to move a document.
type DocumentStatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=submitted checked signed rejected"`
}

// Normalize folds the status to its canonical spelling.
func (r *DocumentStatusUpdateRequest) Normalize() {
	status, _ := models.ParseDocumentStatus(r.Status)
	r.Status = string(status)
}

// DocumentFilter describes query string filters for listing documents.
type DocumentFilter struct {
	Student string `query:"student"`
	Type    string `query:"type" validate:"omitempty,oneof=transcript leave thesis recommendation"`
	Status  string `query:"status" validate:"omitempty,oneof=submitted checked signed rejected"`
}

// Normalize trims the student name and folds type and status filters.
func (f *DocumentFilter) Normalize() {
	f.Student = strings.TrimSpace(f.Student)
	docType, _ := models.ParseDocumentType(f.Type)
	f.Type = string(docType)
	status, _ := models.ParseDocumentStatus(f.Status)
	f.Status = string(status)
}

// ToServiceFilter converts the query filter into the review filter.
func (f DocumentFilter) ToServiceFilter() service.DocumentFilter {
	return service.DocumentFilter{
		StudentName: f.Student,
		Type:        models.DocumentType(f.Type),
		Status:      models.DocumentStatus(f.Status),
	}
}

// DocumentResponse is returned to API clients when viewing documents.
type DocumentResponse struct {
	ID           string    `json:"id"`
	StudentID    string    `json:"student_id"`
	StudentName  string    `json:"student_name"`
	FileName     string    `json:"file_name"`
	FileURL      string    `json:"file_url"`
	DownloadURL  string    `json:"download_url,omitempty"`
	Description  string    `json:"description"`
	DocumentType string    `json:"document_type"`
	TypeLabel    string    `json:"type_label"`
	Status       string    `json:"status"`
	StatusLabel  string    `json:"status_label"`
	SubmittedAt  time.Time `json:"submitted_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DocumentSummaryResponse backs the review dashboard header.
type DocumentSummaryResponse struct {
	Summary      service.DocumentSummary `json:"summary"`
	StudentNames []string                `json:"student_names"`
}

// NewDocumentResponse converts a Document model into a DTO.
func NewDocumentResponse(model models.Document) DocumentResponse {
	response := DocumentResponse{
		ID:           model.ID,
		StudentID:    model.StudentID,
		StudentName:  model.StudentName,
		FileName:     model.FileName,
		FileURL:      model.FileURL,
		Description:  model.Description,
		DocumentType: string(model.DocumentType),
		TypeLabel:    model.DocumentType.Label(),
		Status:       string(model.Status),
		StatusLabel:  model.Status.Label(),
		SubmittedAt:  model.SubmittedAt,
		UpdatedAt:    model.UpdatedAt,
	}

	if id := storage.RefID(model.FileURL); id != "" && id != model.FileURL {
		response.DownloadURL = BlobPathPrefix + id
	}

	return response
}

// NewDocumentResponseSlice converts document models into DTOs.
func NewDocumentResponseSlice(documents []models.Document) []DocumentResponse {
	responses := make([]DocumentResponse, 0, len(documents))
	for _, doc := range documents {
		responses = append(responses, NewDocumentResponse(doc))
	}
	return responses
}
