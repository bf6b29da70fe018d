package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("ana@example.com"))
	assert.True(t, IsEmail(" ana@example.com "))
	assert.False(t, IsEmail(""))
	assert.False(t, IsEmail("ana@"))
	assert.False(t, IsEmail("not an email"))
}

func TestPhone(t *testing.T) {
	assert.Equal(t, "5511999990000", NormalizePhone("+55 (11) 99999-0000"))
	assert.True(t, IsPhone("+55 (11) 99999-0000"))
	assert.False(t, IsPhone("123"))
	assert.False(t, IsPhone(""))
	assert.False(t, IsPhone("1234567890123456"))
}
