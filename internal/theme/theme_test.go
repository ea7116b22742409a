package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		persisted string
		want      Theme
	}{
		{"", Light},
		{"light", Light},
		{"dark", Dark},
		{"Dark", Light},
		{"purple", Light},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Resolve(tt.persisted), "Resolve(%q)", tt.persisted)
	}
}

func TestThemeIconAndNext(t *testing.T) {
	assert.Equal(t, "🌙", Light.Icon())
	assert.Equal(t, "☀️", Dark.Icon())
	assert.Equal(t, Dark, Light.Next())
	assert.Equal(t, Light, Dark.Next())
	assert.Equal(t, Light, Light.Next().Next())
}

func TestTransitions(t *testing.T) {
	assert.Equal(t, Transition{From: Dark, To: Dark}, Initial("dark"))
	assert.Equal(t, Transition{From: Light, To: Light}, Initial("garbage"))
	assert.Equal(t, Transition{From: Light, To: Dark, Persist: true}, Toggle(Light))
	assert.Equal(t, Transition{From: Dark, To: Dark, Persist: true}, Adopt(Dark, Dark))
}
