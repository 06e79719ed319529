package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	assert.Equal(t, ID("post.created"), New("post", "created"))
	assert.Equal(t, ID("post.comment.added"), New("post", "comment", "added"))
	assert.Equal(t, ID("startup"), New("startup"))
}

func TestID_OwnerAndName(t *testing.T) {
	tests := []struct {
		id    ID
		owner string
		name  string
	}{
		{"post.created", "post", "created"},
		{"post.comment.added", "post", "comment.added"},
		{"startup", "", "startup"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			assert.Equal(t, tt.owner, tt.id.Owner())
			assert.Equal(t, tt.name, tt.id.Name())
			assert.Equal(t, tt.owner != "", tt.id.Scoped())
		})
	}
}

func TestID_Segments(t *testing.T) {
	assert.Nil(t, ID("").Segments())
	assert.Equal(t, []string{"post", "created"}, ID("post.created").Segments())
}

func TestID_Validate(t *testing.T) {
	tests := []struct {
		id    ID
		valid bool
	}{
		{"post.created", true},
		{"startup", true},
		{"post.comment.added", true},
		{"", false},
		{".created", false},
		{"post.", false},
		{"post..created", false},
		{"post created", false},
		{"post.cre\tated", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			err := tt.id.Validate()
			if tt.valid {
				assert.NoError(t, err)
				assert.True(t, tt.id.IsValid())
				return
			}
			require.Error(t, err)
			assert.True(t, Error.Has(err))
			assert.False(t, tt.id.IsValid())
		})
	}
}
