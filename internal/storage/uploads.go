package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Лимиты вложений уведомлений.
const (
	MaxAttachments    = 5
	MaxAttachmentSize = 20 << 20 // 20MB
)

var ErrBadAttachmentType = errors.New("only PNG, PDF, and DOCX files are allowed")

var allowedAttachmentTypes = map[string]bool{
	"image/png":       true,
	"application/pdf": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// SaveAttachments сохраняет файлы из multipart-формы в каталог uploads
// и возвращает их публичные пути (/uploads/<имя>).
func SaveAttachments(uploadsDir string, files []*multipart.FileHeader) ([]string, error) {
	if len(files) > MaxAttachments {
		files = files[:MaxAttachments]
	}

	var saved []string
	var onDisk []string
	// Партия сохраняется целиком либо никак: при ошибке на любом файле
	// уже записанные удаляются.
	for _, fh := range files {
		if fh.Size > MaxAttachmentSize {
			removeAll(onDisk)
			return nil, fmt.Errorf("file %s is too large", fh.Filename)
		}
		if !allowedAttachmentTypes[fh.Header.Get("Content-Type")] {
			removeAll(onDisk)
			return nil, ErrBadAttachmentType
		}

		name := uuid.NewString() + "-" + filepath.Base(fh.Filename)
		dst := filepath.Join(uploadsDir, name)
		if err := saveFile(fh, dst); err != nil {
			removeAll(onDisk)
			return nil, err
		}
		onDisk = append(onDisk, dst)
		saved = append(saved, "/uploads/"+name)
	}
	return saved, nil
}

func removeAll(paths []string) {
	for _, p := range paths {
		os.Remove(p)
	}
}

func saveFile(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create upload file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return fmt.Errorf("write upload file: %w", err)
	}
	return nil
}
