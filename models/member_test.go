package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveUsername(t *testing.T) {
	assert.Equal(t, "klamb", DeriveUsername("Kevin", "Lamb"))
	assert.Equal(t, "klamb", DeriveUsername("  kevin ", " LAMB "))
	assert.Equal(t, "joconnor", DeriveUsername("Jess", "O'Connor"))
	assert.Equal(t, "m", DeriveUsername("Madonna", ""))
	assert.Equal(t, "", DeriveUsername("", ""))
}
