package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/granafacil/financeiro/pkg/config"
	pkgstorage "github.com/granafacil/financeiro/pkg/storage"
)

func newTestLocal(t *testing.T) *Local {
	t.Helper()
	return NewLocal(config.Storage{
		Dir:     t.TempDir(),
		BaseURL: "http://localhost:3000/uploads/",
	})
}

func TestUploadReturnsPublicURL(t *testing.T) {
	l := newTestLocal(t)

	url, err := l.Upload(context.Background(), "receipts", "nota", "image/png", strings.NewReader("fake png bytes"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/uploads/receipts/nota.png", url)

	data, err := os.ReadFile(filepath.Join(l.dir, "receipts", "nota.png"))
	require.NoError(t, err)
	assert.Equal(t, "fake png bytes", string(data))
}

func TestUploadKeepsExistingExtension(t *testing.T) {
	l := newTestLocal(t)

	url, err := l.Upload(context.Background(), "receipts", "nota.pdf", "application/pdf", strings.NewReader("%PDF-"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, "/receipts/nota.pdf"))
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	l := newTestLocal(t)

	_, err := l.Upload(context.Background(), "receipts", "run", "application/x-executable", strings.NewReader("MZ"))
	assert.ErrorIs(t, err, pkgstorage.ErrUnsupportedType)
}

func TestUploadRejectsEmptyFile(t *testing.T) {
	l := newTestLocal(t)

	_, err := l.Upload(context.Background(), "receipts", "vazio", "image/png", strings.NewReader(""))
	assert.ErrorIs(t, err, pkgstorage.ErrEmptyFile)

	_, statErr := os.Stat(filepath.Join(l.dir, "receipts", "vazio.png"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	l := newTestLocal(t)

	big := strings.NewReader(strings.Repeat("a", MaxUploadSize+1))
	_, err := l.Upload(context.Background(), "receipts", "grande", "image/png", big)
	assert.ErrorIs(t, err, pkgstorage.ErrTooLarge)
}

func TestRemoveMissingFileIsNoError(t *testing.T) {
	l := newTestLocal(t)
	assert.NoError(t, l.Remove(context.Background(), "receipts", "nope.png"))
}

func TestRemoveDeletesStoredFile(t *testing.T) {
	l := newTestLocal(t)

	_, err := l.Upload(context.Background(), "receipts", "nota", "image/jpeg", strings.NewReader("jpeg"))
	require.NoError(t, err)

	require.NoError(t, l.Remove(context.Background(), "receipts", "nota.jpg"))
	_, statErr := os.Stat(filepath.Join(l.dir, "receipts", "nota.jpg"))
	assert.True(t, os.IsNotExist(statErr))
}
