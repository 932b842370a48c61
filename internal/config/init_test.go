package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitSuggesterRequiresKeyInProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("OPENAI_API_KEY", "")

	_, err := InitSuggester(zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestInitSuggesterDegradesOutsideProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("OPENAI_API_KEY", "")

	client, err := InitSuggester(zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestInitSuggesterWithKey(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	client, err := InitSuggester(zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, client)
}
