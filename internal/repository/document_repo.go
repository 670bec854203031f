package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/noah-isme/edudocs-api/internal/models"
)

// ListDocuments returns all documents, most recently submitted first.
func (r *MemoryRepository) ListDocuments(ctx context.Context) (documents []models.Document, err error) {
	defer func(start time.Time) { observe("list_documents", start, err) }(time.Now())

	if err := r.wait(ctx, r.latency.ListDocuments); err != nil {
		return nil, err
	}

	r.mu.RLock()
	documents = make([]models.Document, len(r.documents))
	copy(documents, r.documents)
	r.mu.RUnlock()

	sortBySubmission(documents)
	return documents, nil
}

// ListDocumentsByStudent returns one student's documents, most recently
// submitted first.
func (r *MemoryRepository) ListDocumentsByStudent(ctx context.Context, studentID string) (documents []models.Document, err error) {
	defer func(start time.Time) { observe("list_documents_by_student", start, err) }(time.Now())

	if err := r.wait(ctx, r.latency.ListDocumentsByStudent); err != nil {
		return nil, err
	}

	r.mu.RLock()
	documents = make([]models.Document, 0)
	for _, doc := range r.documents {
		if doc.StudentID == studentID {
			documents = append(documents, doc)
		}
	}
	r.mu.RUnlock()

	sortBySubmission(documents)
	return documents, nil
}

// CreateDocument files a new submission on behalf of a student. The blob is
// registered as a transient file reference.
func (r *MemoryRepository) CreateDocument(ctx context.Context, input models.NewDocument, blob *models.FileBlob) (doc models.Document, err error) {
	defer func(start time.Time) { observe("create_document", start, err) }(time.Now())

	input.StudentID = strings.TrimSpace(input.StudentID)
	input.StudentName = strings.TrimSpace(input.StudentName)
	input.Description = strings.TrimSpace(input.Description)
	if err := r.validator.Struct(input); err != nil {
		return models.Document{}, translateValidation(err)
	}
	if blob == nil || strings.TrimSpace(blob.Name) == "" {
		return models.Document{}, validationFailure("file", "is required")
	}

	if err := r.wait(ctx, r.latency.CreateDocument); err != nil {
		return models.Document{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	student, found := r.findUser(input.StudentID)
	if !found || !student.IsStudent() {
		return models.Document{}, validationFailure("student_id", "does not reference a student")
	}

	object, err := r.blobs.Put(*blob)
	if err != nil {
		return models.Document{}, validationFailure("file", err.Error())
	}

	studentName := input.StudentName
	if studentName == "" {
		studentName = student.Name
	}

	now := r.now()
	doc = models.Document{
		ID:           r.nextID("doc"),
		StudentID:    student.ID,
		StudentName:  studentName,
		FileName:     object.Name,
		FileURL:      object.Ref,
		Description:  input.Description,
		DocumentType: input.DocumentType,
		Status:       models.DocumentStatusSubmitted,
		SubmittedAt:  now,
		UpdatedAt:    now,
	}

	r.documents = append([]models.Document{doc}, r.documents...)
	return doc, nil
}

// UpdateDocumentStatus moves a document to any status. Unknown ids are
// reported through found without touching the collection.
func (r *MemoryRepository) UpdateDocumentStatus(ctx context.Context, docID string, status models.DocumentStatus) (doc models.Document, found bool, err error) {
	defer func(start time.Time) { observe("update_document_status", start, err) }(time.Now())

	if !status.Valid() {
		return models.Document{}, false, validationFailure("status", "must be one of: submitted, checked, signed, rejected")
	}

	if err := r.wait(ctx, r.latency.UpdateDocumentStatus); err != nil {
		return models.Document{}, false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.documents {
		if r.documents[i].ID != docID {
			continue
		}

		updatedAt := r.now()
		if updatedAt.Before(r.documents[i].UpdatedAt) {
			updatedAt = r.documents[i].UpdatedAt
		}
		r.documents[i].Status = status
		r.documents[i].UpdatedAt = updatedAt
		return r.documents[i], true, nil
	}

	return models.Document{}, false, nil
}

func sortBySubmission(documents []models.Document) {
	sort.SliceStable(documents, func(i, j int) bool {
		return documents[i].SubmittedAt.After(documents[j].SubmittedAt)
	})
}
