package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequestOffset(t *testing.T) {
	tests := []struct {
		name string
		req  PageRequest
		want int
	}{
		{"first page", PageRequest{Page: 0, Size: 20}, 0},
		{"third page", PageRequest{Page: 2, Size: 20}, 40},
		{"negative page", PageRequest{Page: -1, Size: 20}, 0},
		{"zero size", PageRequest{Page: 3, Size: 0}, 0},
		{"largest page saturates", PageRequest{Page: math.MaxInt, Size: 20}, math.MaxInt},
		{"just past the limit saturates", PageRequest{Page: math.MaxInt/20 + 1, Size: 20}, math.MaxInt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.Offset())
		})
	}
}

func TestNewPageOnFarAwayPage(t *testing.T) {
	p := NewPage[int](nil, PageRequest{Page: math.MaxInt, Size: 20}, 3)
	assert.NotNil(t, p.Content)
	assert.Empty(t, p.Content)
	assert.Equal(t, 1, p.TotalPages)
}
