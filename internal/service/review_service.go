package service

import (
	"sort"

	"github.com/noah-isme/edudocs-api/internal/models"
)

// DocumentFilter narrows the review list. Zero values match everything.
type DocumentFilter struct {
	StudentName string
	Type        models.DocumentType
	Status      models.DocumentStatus
}

// DocumentSummary counts documents per review status.
type DocumentSummary struct {
	Total     int `json:"total"`
	Submitted int `json:"submitted"`
	Checked   int `json:"checked"`
	Signed    int `json:"signed"`
	Rejected  int `json:"rejected"`
}

// FilterDocuments keeps the documents matching every set criterion, in order.
func FilterDocuments(documents []models.Document, filter DocumentFilter) []models.Document {
	filtered := make([]models.Document, 0, len(documents))
	for _, doc := range documents {
		if filter.StudentName != "" && doc.StudentName != filter.StudentName {
			continue
		}
		if filter.Type != "" && doc.DocumentType != filter.Type {
			continue
		}
		if filter.Status != "" && doc.Status != filter.Status {
			continue
		}
		filtered = append(filtered, doc)
	}
	return filtered
}

// SummarizeDocuments tallies documents by status.
func SummarizeDocuments(documents []models.Document) DocumentSummary {
	var summary DocumentSummary
	for _, doc := range documents {
		summary.Total++
		switch doc.Status {
		case models.DocumentStatusSubmitted:
			summary.Submitted++
		case models.DocumentStatusChecked:
			summary.Checked++
		case models.DocumentStatusSigned:
			summary.Signed++
		case models.DocumentStatusRejected:
			summary.Rejected++
		}
	}
	return summary
}

// StudentNames lists the distinct student names, sorted.
func StudentNames(documents []models.Document) []string {
	seen := make(map[string]struct{}, len(documents))
	names := make([]string, 0)
	for _, doc := range documents {
		if _, ok := seen[doc.StudentName]; ok {
			continue
		}
		seen[doc.StudentName] = struct{}{}
		names = append(names, doc.StudentName)
	}
	sort.Strings(names)
	return names
}
