package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator(t *testing.T) {
	t.Run("new validator is valid", func(t *testing.T) {
		v := New()
		assert.True(t, v.Valid())
	})

	t.Run("failed check records the message", func(t *testing.T) {
		v := New()
		v.Check(false, "title", "must be provided")
		assert.False(t, v.Valid())
		assert.Equal(t, "must be provided", v.Errors["title"])
	})

	t.Run("first message per field wins", func(t *testing.T) {
		v := New()
		v.AddError("title", "must be provided")
		v.AddError("title", "must not be blank")
		assert.Equal(t, "must be provided", v.Errors["title"])
	})

	t.Run("passing check records nothing", func(t *testing.T) {
		v := New()
		v.Check(true, "title", "must be provided")
		assert.True(t, v.Valid())
	})
}

func TestIn(t *testing.T) {
	assert.True(t, In("asc", "asc", "desc"))
	assert.False(t, In("sideways", "asc", "desc"))
}
