package main

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edudocs-api/internal/config"
	"github.com/noah-isme/edudocs-api/pkg/ai"
)

func TestNewGeneratorWithoutCredential(t *testing.T) {
	generator, err := newGenerator(config.Config{OpenAIAPIKey: "  "}, zerolog.Nop())
	require.NoError(t, err)
	require.Nil(t, generator)
}

func TestNewGeneratorWithCredential(t *testing.T) {
	generator, err := newGenerator(config.Config{OpenAIAPIKey: "sk-test", AIModel: "gpt-test"}, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, generator)

	openAI, ok := generator.(*ai.OpenAIGenerator)
	require.True(t, ok)
	require.Equal(t, "gpt-test", openAI.Model())
}
