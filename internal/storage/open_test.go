package storage

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenState(t *testing.T) {
	fs := afero.NewMemMapFs()

	yamlStore, err := OpenState(fs, BackendYAML, "/state")
	require.NoError(t, err)
	require.IsType(t, &StateFile{}, yamlStore)
	assert.Equal(t, "/state/state.yaml", yamlStore.(*StateFile).Path())

	defaultStore, err := OpenState(fs, "", "/state")
	require.NoError(t, err)
	assert.IsType(t, &StateFile{}, defaultStore)

	memoryStore, err := OpenState(fs, BackendMemory, "/state")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, memoryStore)

	sqliteStore, err := OpenState(afero.NewOsFs(), BackendSQLite, t.TempDir())
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, sqliteStore)
	require.NoError(t, sqliteStore.Close())

	_, err = OpenState(fs, "etcd", "/state")
	assert.ErrorContains(t, err, `unknown state backend "etcd"`)
}
