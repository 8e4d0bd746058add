package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), ".cardmanage.yml", "log_level: debug\n")

	result, err := Validate(path)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidate_InvalidConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), ".cardmanage.yml", "log_level: chatty\n")

	result, err := Validate(path)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, "log_level", result.Errors[0].Field)
}

func TestValidate_FileNotFound(t *testing.T) {
	_, err := Validate("/nonexistent/.cardmanage.yml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestValidationResult_Summary(t *testing.T) {
	result := &ValidationResult{Valid: true}
	assert.Equal(t, "", result.Summary())

	result.addError("a", "first")
	result.addError("b", "second")
	assert.False(t, result.Valid)
	assert.Equal(t, "[a] first; [b] second", result.Summary())
}
