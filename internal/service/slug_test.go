package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Backend Engineer", "backend-engineer"},
		{"  Senior  Node.js Engineer! ", "senior-nodejs-engineer"},
		{"UI/UX Designer", "ui-ux-designer"},
		{"data_platform--lead", "data-platform-lead"},
		{"Café Manager", "cafe-manager"},
		{"C++ Developer", "c-developer"},
		{"!!!", ""},
		{"", ""},
		{"Über-Engineer 2", "uber-engineer-2"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestSlugBase(t *testing.T) {
	assert.Equal(t, "custom", slugBase("Custom", "Backend Engineer"))
	assert.Equal(t, "backend-engineer", slugBase("", "Backend Engineer"))
	assert.Equal(t, "backend-engineer", slugBase("???", "Backend Engineer"))
	assert.Equal(t, "", slugBase("", "***"))
}
