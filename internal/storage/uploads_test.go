package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testUpload struct {
	name        string
	contentType string
}

func multipartRequest(t *testing.T, files []testUpload) []*multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, f := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="attachments"; filename="`+f.name+`"`)
		header.Set("Content-Type", f.contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("file-content"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/notifications", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["attachments"]
}

func TestSaveAttachments(t *testing.T) {
	dir := t.TempDir()
	files := multipartRequest(t, []testUpload{
		{"report.pdf", "application/pdf"},
		{"chart.png", "image/png"},
	})

	paths, err := SaveAttachments(dir, files)
	require.NoError(t, err)
	require.Len(t, paths, 2)

	for _, p := range paths {
		assert.True(t, strings.HasPrefix(p, "/uploads/"))
		name := strings.TrimPrefix(p, "/uploads/")
		data, err := os.ReadFile(dir + "/" + name)
		require.NoError(t, err)
		assert.Equal(t, "file-content", string(data))
	}
}

func TestSaveAttachmentsRejectsBadType(t *testing.T) {
	dir := t.TempDir()
	files := multipartRequest(t, []testUpload{{"run.exe", "application/octet-stream"}})

	_, err := SaveAttachments(dir, files)
	assert.ErrorIs(t, err, ErrBadAttachmentType)

	// Ничего не должно быть сохранено
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestSaveAttachmentsCleansUpPartialBatch(t *testing.T) {
	dir := t.TempDir()
	// Первый файл валиден и успевает записаться, второй отклоняется
	files := multipartRequest(t, []testUpload{
		{"report.pdf", "application/pdf"},
		{"run.exe", "application/octet-stream"},
	})

	paths, err := SaveAttachments(dir, files)
	assert.ErrorIs(t, err, ErrBadAttachmentType)
	assert.Nil(t, paths)

	// Уже записанный report.pdf должен быть удалён вместе с отказом
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}
