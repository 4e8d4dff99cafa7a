package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestStorePaths(t *testing.T) {
	s := newTestStore(t)

	assert.Equal(t, filepath.Join(s.CoursesDir(), "42.json"), s.CoursePath(42))
	assert.Equal(t, filepath.Join(s.PendingDir(), "n7.json"), s.PendingPath("n7"))
	assert.Equal(t, filepath.Join(s.PendingDir(), "n7_v2.json"), s.VersionPath("n7", 2))

	// Относительные пути из БД резолвятся в каталог данных
	assert.Equal(t, s.CoursePath(42), s.Resolve(s.CourseRel(42)))
	assert.Equal(t, s.PendingPath("c3"), s.Resolve(s.PendingRel("c3")))
	// Абсолютный путь проходит как есть
	assert.Equal(t, "/tmp/x.json", s.Resolve("/tmp/x.json"))
}

func TestStoreCreatesDirs(t *testing.T) {
	s := newTestStore(t)
	for _, dir := range []string{s.CoursesDir(), s.PendingDir(), s.UploadsDir()} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestWriteReadDocument(t *testing.T) {
	s := newTestStore(t)
	path := s.PendingPath("n1")

	doc := docFromJSON(t, `{"id":"n1","title":"Go","modules":[{"steps":[]}]}`)
	require.NoError(t, WriteDocument(path, doc))

	got, err := ReadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	// Временных файлов после записи не остаётся
	entries, err := os.ReadDir(s.PendingDir())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestReadDocumentMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := ReadDocument(s.CoursePath(99))
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestReadDocumentBroken(t *testing.T) {
	s := newTestStore(t)
	path := s.CoursePath(1)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := ReadDocument(path)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrDocumentNotFound)
}

func TestRemoveFile(t *testing.T) {
	s := newTestStore(t)
	path := s.PendingPath("n1")
	require.NoError(t, WriteDocument(path, Document{"modules": []interface{}{}}))

	assert.Equal(t, CleanupDeleted, RemoveFile(path))
	assert.Equal(t, CleanupAlreadyAbsent, RemoveFile(path))
}
