package models_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edudocs-api/internal/models"
)

func TestParseEnumerations(t *testing.T) {
	status, ok := models.ParseDocumentStatus(" Signed ")
	require.True(t, ok)
	require.Equal(t, models.DocumentStatusSigned, status)
	require.Equal(t, "Signed", status.Label())

	_, ok = models.ParseDocumentStatus("archived")
	require.False(t, ok)

	docType, ok := models.ParseDocumentType("thesis")
	require.True(t, ok)
	require.Equal(t, "Thesis topic", docType.Label())

	role, ok := models.ParseRole("TEACHER")
	require.True(t, ok)
	require.Equal(t, models.RoleTeacher, role)

	_, ok = models.ParseRole("admin")
	require.False(t, ok)
}

func TestVisibleTo(t *testing.T) {
	alice := models.User{ID: "user-1", Name: "Alice", Role: models.RoleStudent}
	teacher := models.User{ID: "user-3", Name: "Elena", Role: models.RoleTeacher}
	docs := []models.Document{
		{ID: "doc-1", StudentID: "user-1"},
		{ID: "doc-2", StudentID: "user-2"},
		{ID: "doc-3", StudentID: "user-1"},
	}

	all := models.VisibleTo(teacher, docs)
	require.Equal(t, docs, all)
	all[0].ID = "changed"
	require.Equal(t, "doc-1", docs[0].ID)

	own := models.VisibleTo(alice, docs)
	require.Len(t, own, 2)
	require.Equal(t, "doc-1", own[0].ID)
	require.Equal(t, "doc-3", own[1].ID)

	require.Empty(t, models.VisibleTo(models.User{ID: "user-9", Role: models.RoleStudent}, docs))
}
