// pkg/paths/validation_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test name validation and descendant detection

package paths_test

import (
	"testing"

	"github.com/arthur-debert/projman/pkg/errors"
	"github.com/arthur-debert/projman/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "app", false},
		{"with spaces and dots", "my app.v2", false},
		{"unicode", "projét", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"forward slash", "a/b", true},
		{"backslash", `a\b`, true},
		{"dot", ".", true},
		{"dotdot", "..", true},
		{"control character", "a\tb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := paths.ValidateName(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsStrictDescendant(t *testing.T) {
	tests := []struct {
		name   string
		parent string
		child  string
		want   bool
	}{
		{"direct child", "/a/proj", "/a/proj/sub", true},
		{"deep child", "/a/proj", "/a/proj/x/y/z", true},
		{"same path", "/a/proj", "/a/proj", false},
		{"same path trailing slash", "/a/proj/", "/a/proj", false},
		{"sibling", "/a/proj", "/a/other", false},
		{"sibling with shared prefix", "/a/proj", "/a/project", false},
		{"parent", "/a/proj", "/a", false},
		{"dotdot-prefixed name is inside", "/a/proj", "/a/proj/..hidden", true},
		{"unclean child", "/a/proj", "/a/proj/sub/../sub2", true},
		{"escaping child", "/a/proj", "/a/proj/../other", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := paths.IsStrictDescendant(tt.parent, tt.child)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
