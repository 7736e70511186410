package storage

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		setupFS func(fs afero.Fs) error
		want    string
	}{
		{
			name:    "creates parent directories",
			path:    "nested/dir/file.yaml",
			setupFS: func(afero.Fs) error { return nil },
			want:    "fresh",
		},
		{
			name: "overwrites existing file",
			path: "existing/file.yaml",
			setupFS: func(fs afero.Fs) error {
				return afero.WriteFile(fs, "existing/file.yaml", []byte("old content"), 0o644)
			},
			want: "fresh",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, tt.setupFS(fs))

			require.NoError(t, WriteFileAtomic(fs, tt.path, []byte(tt.want)))

			content, err := afero.ReadFile(fs, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(content))

			leftovers, err := afero.Glob(fs, "*/.tmp-*")
			require.NoError(t, err)
			assert.Empty(t, leftovers)
		})
	}
}
