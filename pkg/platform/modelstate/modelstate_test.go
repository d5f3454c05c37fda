package modelstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModelState(t *testing.T) {
	ms := New()
	assert.True(t, ms.IsValid())

	ms.AddError("file", "The selected file must be a CSV")
	ms.AddError("file", "The selected file is empty")
	ms.AddError("data_period", "Select a reporting period")

	assert.False(t, ms.IsValid())
	assert.Equal(t, 3, ms.Count())
	assert.Equal(t, []string{"data_period", "file"}, ms.Keys())
	assert.Equal(t, []string{"The selected file must be a CSV", "The selected file is empty"}, ms.Errors("file"))
	assert.Nil(t, ms.Errors("missing"))
}
