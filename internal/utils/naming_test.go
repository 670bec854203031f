package utils_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edudocs-api/internal/utils"
)

func TestSnakeCase(t *testing.T) {
	cases := map[string]string{
		"Name":         "name",
		"StudentID":    "student_id",
		"DocumentType": "document_type",
		"UserID":       "user_id",
		"":             "",
	}
	for input, expected := range cases {
		require.Equal(t, expected, utils.SnakeCase(input), input)
	}
}
