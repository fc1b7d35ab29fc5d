package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxCommitSwapsDirectory(t *testing.T) {
	base := filepath.Join(t.TempDir(), "store")
	require.NoError(t, os.MkdirAll(filepath.Join(base, studiesDir), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(base, studiesDir, "a.yaml"), []byte("old"), 0644))

	tx := newCopyOnWriteTx(base)
	require.NoError(t, tx.begin())
	require.NoError(t, tx.writeFile(filepath.Join(studiesDir, "a.yaml"), []byte("new")))
	require.NoError(t, tx.writeFile(filepath.Join(studiesDir, "b.yaml"), []byte("added")))
	require.NoError(t, tx.commit())

	data, err := os.ReadFile(filepath.Join(base, studiesDir, "a.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	data, err = os.ReadFile(filepath.Join(base, studiesDir, "b.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "added", string(data))
}

func TestTxRollbackLeavesBaseUntouched(t *testing.T) {
	base := filepath.Join(t.TempDir(), "store")
	require.NoError(t, os.MkdirAll(filepath.Join(base, studiesDir), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(base, studiesDir, "a.yaml"), []byte("old"), 0644))

	tx := newCopyOnWriteTx(base)
	require.NoError(t, tx.begin())
	require.NoError(t, tx.writeFile(filepath.Join(studiesDir, "a.yaml"), []byte("new")))
	require.NoError(t, tx.rollback())

	data, err := os.ReadFile(filepath.Join(base, studiesDir, "a.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(data), "rollback must not alter the live tree")

	_, err = os.Stat(tx.tempDir)
	assert.True(t, os.IsNotExist(err), "rollback removes the temp directory")
}

func TestTxBeginWithoutBaseDirectory(t *testing.T) {
	base := filepath.Join(t.TempDir(), "store")

	tx := newCopyOnWriteTx(base)
	require.NoError(t, tx.begin())
	require.NoError(t, tx.writeFile(filepath.Join(studiesDir, "a.yaml"), []byte("first")))
	require.NoError(t, tx.commit())

	data, err := os.ReadFile(filepath.Join(base, studiesDir, "a.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))
}

func TestTxRemoveFile(t *testing.T) {
	base := filepath.Join(t.TempDir(), "store")
	require.NoError(t, os.MkdirAll(filepath.Join(base, studiesDir), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(base, studiesDir, "a.yaml"), []byte("doomed"), 0644))

	tx := newCopyOnWriteTx(base)
	require.NoError(t, tx.begin())
	require.NoError(t, tx.removeFile(filepath.Join(studiesDir, "a.yaml")))
	require.NoError(t, tx.commit())

	_, err := os.Stat(filepath.Join(base, studiesDir, "a.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestTxDoubleCommitFails(t *testing.T) {
	base := filepath.Join(t.TempDir(), "store")

	tx := newCopyOnWriteTx(base)
	require.NoError(t, tx.begin())
	require.NoError(t, tx.commit())
	assert.Error(t, tx.commit())
	assert.Error(t, tx.writeFile("x", []byte("y")))
	assert.Error(t, tx.rollback())
}
