package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fareops/catalog-engine/pkg/apperrors"
)

func TestPageRequestRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		req  PageRequest
		ok   bool
	}{
		{"first page", PageRequest{Number: 1, Size: 25}, true},
		{"page zero", PageRequest{Number: 0, Size: 25}, false},
		{"negative page", PageRequest{Number: -3, Size: 25}, false},
		{"size zero", PageRequest{Number: 1, Size: 0}, false},
		{"negative size", PageRequest{Number: 1, Size: -1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperrors.IsValidation(err))
			}
		})
	}
}

func TestPageRequestOffset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{Number: 1, Size: 25}.Offset())
	assert.Equal(t, 50, PageRequest{Number: 3, Size: 25}.Offset())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, Page[int]{TotalCount: 0, PageSize: 25}.TotalPages())
	assert.Equal(t, 1, Page[int]{TotalCount: 25, PageSize: 25}.TotalPages())
	assert.Equal(t, 2, Page[int]{TotalCount: 26, PageSize: 25}.TotalPages())
}

func TestNewPageEchoesRequest(t *testing.T) {
	p := NewPage([]int{1, 2, 3}, 12, PageRequest{Number: 2, Size: 3})

	assert.Equal(t, []int{1, 2, 3}, p.Items)
	assert.Equal(t, 12, p.TotalCount)
	assert.Equal(t, 2, p.PageNumber)
	assert.Equal(t, 3, p.PageSize)
}
