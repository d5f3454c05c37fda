package formvalidation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemereg/pkg/platform/modelstate"
)

type telephoneForm struct {
	Number string `form:"number" validate:"required,max=5" errmsg:"Enter a number" errmsg_max:"Number is too long"`
}

type declarationForm struct {
	FullName string `form:"FullName" validate:"required,max=10" errmsg:"Enter your full name"`
	Reason   string `form:"Reason" validate:"omitempty,oneof=A B"`
}

func TestValidate(t *testing.T) {
	v := New()

	t.Run("valid form adds no errors", func(t *testing.T) {
		ms := modelstate.New()
		ok := v.Validate(&declarationForm{FullName: "Jo Bloggs", Reason: "A"}, ms)
		assert.True(t, ok)
		assert.True(t, ms.IsValid())
	})

	t.Run("errmsg tag wins over generic message", func(t *testing.T) {
		ms := modelstate.New()
		ok := v.Validate(&declarationForm{}, ms)
		assert.False(t, ok)
		require.Len(t, ms.Errors("FullName"), 1)
		assert.Equal(t, "Enter your full name", ms.Errors("FullName")[0])
	})

	t.Run("generic message keyed by form tag", func(t *testing.T) {
		ms := modelstate.New()
		ok := v.Validate(declarationForm{FullName: "Jo", Reason: "C"}, ms)
		assert.False(t, ok)
		assert.Equal(t, []string{"Select a valid Reason"}, ms.Errors("Reason"))
	})

	t.Run("per-tag message wins over errmsg", func(t *testing.T) {
		ms := modelstate.New()
		assert.False(t, v.Validate(telephoneForm{Number: "0123456"}, ms))
		assert.Equal(t, []string{"Number is too long"}, ms.Errors("number"))

		ms = modelstate.New()
		assert.False(t, v.Validate(telephoneForm{}, ms))
		assert.Equal(t, []string{"Enter a number"}, ms.Errors("number"))
	})
}
