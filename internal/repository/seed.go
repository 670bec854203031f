package repository

import (
	"time"

	"github.com/noah-isme/edudocs-api/internal/models"
)

// Seed loads the demo workspace: two students, one teacher and three
// documents. Records whose ids already exist are skipped, so calling Seed
// twice has no further effect.
func (r *MemoryRepository) Seed() {
	users := []models.User{
		{ID: "user-1", Name: "Alice Ivanova", Role: models.RoleStudent},
		{ID: "user-2", Name: "Boris Petrov", Role: models.RoleStudent},
		{ID: "user-3", Name: "Dr. Elena Sidorova", Role: models.RoleTeacher},
	}

	documents := []models.Document{
		{
			ID:           "doc-1",
			StudentID:    "user-1",
			StudentName:  "Alice Ivanova",
			FileName:     "transcript-request.pdf",
			Description:  "Requesting an official transcript for a master's programme application.",
			DocumentType: models.DocumentTypeTranscript,
			Status:       models.DocumentStatusSubmitted,
			SubmittedAt:  time.Date(2023, 10, 25, 10, 0, 0, 0, time.UTC),
			UpdatedAt:    time.Date(2023, 10, 25, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:           "doc-2",
			StudentID:    "user-2",
			StudentName:  "Boris Petrov",
			FileName:     "thesis-topic-v2.docx",
			Description:  "Final thesis topic proposal on applications of quantum computing.",
			DocumentType: models.DocumentTypeThesis,
			Status:       models.DocumentStatusChecked,
			SubmittedAt:  time.Date(2023, 10, 22, 14, 30, 0, 0, time.UTC),
			UpdatedAt:    time.Date(2023, 10, 24, 11, 0, 0, 0, time.UTC),
		},
		{
			ID:           "doc-3",
			StudentID:    "user-1",
			StudentName:  "Alice Ivanova",
			FileName:     "leave-application.pdf",
			Description:  "Medical leave application for next week.",
			DocumentType: models.DocumentTypeLeave,
			Status:       models.DocumentStatusSigned,
			SubmittedAt:  time.Date(2023, 9, 15, 9, 0, 0, 0, time.UTC),
			UpdatedAt:    time.Date(2023, 9, 16, 16, 45, 0, 0, time.UTC),
		},
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range users {
		if _, exists := r.findUser(user.ID); !exists {
			r.users = append(r.users, user)
		}
	}

	existing := make(map[string]struct{}, len(r.documents))
	for _, doc := range r.documents {
		existing[doc.ID] = struct{}{}
	}
	for _, doc := range documents {
		if _, ok := existing[doc.ID]; !ok {
			r.documents = append(r.documents, doc)
		}
	}
}
