package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFlag(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected bool
	}{
		{"nil", nil, false},
		{"false", false, false},
		{"true", true, true},
		{"zero int", 0, false},
		{"one", 1, true},
		{"two", 2, true},
		{"negative", -1, true},
		{"zero int64", int64(0), false},
		{"one int64", int64(1), true},
		{"zero float", 0.0, false},
		{"nonzero float", 0.5, true},
		{"empty string", "", false},
		{"nonempty string", "x", true},
		{"empty bytes", []byte{}, false},
		{"nonempty bytes", []byte{0}, true},
		{"nil typed pointer", (*int)(nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeFlag(tt.value))
		})
	}
}

func TestUserConfigSetters(t *testing.T) {
	config := &UserConfig{UserID: 1}
	assert.False(t, config.HasNonDefaultPreference())

	config.SetTranslatePrivate(1)
	assert.True(t, config.TranslatePrivate)
	assert.True(t, config.HasNonDefaultPreference())

	config.SetTranslatePrivate(0)
	config.SetFactCheckPrivate("on")
	assert.False(t, config.TranslatePrivate)
	assert.True(t, config.FactCheckPrivate)
	assert.True(t, config.HasNonDefaultPreference())

	config.SetFactCheckPrivate(nil)
	assert.False(t, config.HasNonDefaultPreference())
}

func TestGuildRelationValid(t *testing.T) {
	assert.True(t, RelationMember.Valid())
	assert.True(t, RelationAdmin.Valid())
	assert.True(t, RelationBlacklist.Valid())
	assert.False(t, GuildRelation("moderator").Valid())
	assert.False(t, GuildRelation("").Valid())
}
