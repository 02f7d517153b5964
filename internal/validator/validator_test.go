package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clothesInput struct {
	Name    string   `json:"name" validate:"required"`
	Gender  string   `json:"gender" validate:"required,is-gender"`
	Colours []string `json:"colours" validate:"dive,is-colour"`
}

func TestValidate_AcceptsKnownEnums(t *testing.T) {
	v := New()
	err := v.Validate(&clothesInput{Name: "Пальто", Gender: "женский", Colours: []string{"черный", "бежевый"}})
	assert.NoError(t, err)
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	v := New()
	err := v.Validate(&clothesInput{Gender: "other", Colours: []string{"черный", "neon"}})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "This field is required", vErr.Errors["name"])
	assert.Contains(t, vErr.Errors["gender"], "унисекс")
	assert.Contains(t, vErr.Errors, "colours[1]")
	assert.NotContains(t, vErr.Errors, "colours[0]")
}
