package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func TestLoad_OrdersByVersionAndSkipsOtherFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "V2__matches.sql", "CREATE TABLE matches (id INT);")
	writeFile(t, dir, "V1__init.sql", "  CREATE TABLE skills (id INT);\n")
	writeFile(t, dir, "README.md", "notes")

	migs, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, migs, 2)

	assert.Equal(t, int64(1), migs[0].Version)
	assert.Equal(t, "init", migs[0].Name)
	assert.Equal(t, "CREATE TABLE skills (id INT);", migs[0].SQL)
	assert.Len(t, migs[0].Checksum, 64)
	assert.Equal(t, int64(2), migs[1].Version)
}

func TestLoad_RejectsDuplicateVersion(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "V1__a.sql", "SELECT 1;")
	writeFile(t, dir, "V1__b.sql", "SELECT 2;")

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate migration version")
}

func TestLoad_RejectsEmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "V1__empty.sql", "   ")

	_, err := Load(dir)
	require.Error(t, err)
}

func TestLoad_MissingDirIsEmpty(t *testing.T) {
	migs, err := Load(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, migs)
}

func TestLoad_ShippedMigrations(t *testing.T) {
	migs, err := Load(filepath.Join("..", "..", "..", "migrations"))
	require.NoError(t, err)
	require.NotEmpty(t, migs)
	assert.Contains(t, migs[0].SQL, "project_chat_history")
}
