package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadUploadPolicy_Default(t *testing.T) {
	p, err := LoadUploadPolicy("")
	require.NoError(t, err)

	image, ok := p.Rule("image")
	require.True(t, ok)
	assert.Equal(t, "images", image.Folder)
	assert.Equal(t, int64(5<<20), image.MaxSize)
	assert.Contains(t, image.Allowed, "image/webp")

	byFolder, ok := p.Rule("documents")
	require.True(t, ok)
	assert.Equal(t, int64(20<<20), byFolder.MaxSize)

	_, ok = p.Rule("executables")
	assert.False(t, ok)

	assert.Equal(t, int64(200<<20+1<<20), p.MaxRequestBytes())
}

func TestLoadUploadPolicy_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`types:
  image:
    folder: img
    max_size: 1024
    allowed: [image/png]
`), 0o600))

	p, err := LoadUploadPolicy(path)
	require.NoError(t, err)
	assert.Len(t, p.Types, 1)
	assert.Equal(t, int64(1024+1<<20), p.MaxRequestBytes())
}

func TestParseUploadPolicy_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{name: "empty", yaml: "types: {}\n", wantErr: "no types"},
		{name: "traversal folder", yaml: "types:\n  x:\n    folder: ../etc\n    max_size: 1\n    allowed: [a/b]\n", wantErr: "invalid folder"},
		{name: "zero size", yaml: "types:\n  x:\n    folder: x\n    max_size: 0\n    allowed: [a/b]\n", wantErr: "max_size"},
		{name: "no mime", yaml: "types:\n  x:\n    folder: x\n    max_size: 1\n", wantErr: "allows no MIME"},
		{name: "unknown key", yaml: "kinds: {}\n", wantErr: "kinds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseUploadPolicy([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
