package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrDocumentNotFound — файла с JSON курса нет на диске.
var ErrDocumentNotFound = errors.New("course document not found")

// Результат best-effort удаления файла. Ошибка удаления логируется,
// но наружу не отдаётся — запись в БД к этому моменту уже удалена.
type CleanupOutcome int

const (
	CleanupDeleted CleanupOutcome = iota
	CleanupAlreadyAbsent
	CleanupFailed
)

func (c CleanupOutcome) String() string {
	switch c {
	case CleanupDeleted:
		return "deleted"
	case CleanupAlreadyAbsent:
		return "already absent"
	default:
		return "failed"
	}
}

// Store — файловое хранилище JSON-документов курсов.
// Опубликованные курсы лежат в courses/<id>.json, черновики в
// pending_json/<id>.json, снимки прошлых версий в pending_json/<id>_v<n>.json.
type Store struct {
	baseDir string
}

func NewStore(baseDir string) (*Store, error) {
	s := &Store{baseDir: baseDir}
	for _, dir := range []string{s.CoursesDir(), s.PendingDir(), s.UploadsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir %s: %w", dir, err)
		}
	}
	return s, nil
}

func (s *Store) CoursesDir() string { return filepath.Join(s.baseDir, "courses") }
func (s *Store) PendingDir() string { return filepath.Join(s.baseDir, "pending_json") }
func (s *Store) UploadsDir() string { return filepath.Join(s.baseDir, "uploads") }

// В БД пути хранятся относительно каталога данных,
// чтобы переезд каталога не ломал существующие записи.
func (s *Store) Resolve(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(s.baseDir, rel)
}

func (s *Store) CourseRel(courseID uint) string {
	return filepath.Join("courses", fmt.Sprintf("%d.json", courseID))
}

func (s *Store) PendingRel(pendingID string) string {
	return filepath.Join("pending_json", pendingID+".json")
}

// CoursePath — путь JSON-файла опубликованного курса.
func (s *Store) CoursePath(courseID uint) string {
	return filepath.Join(s.CoursesDir(), fmt.Sprintf("%d.json", courseID))
}

// PendingPath — путь JSON-файла черновика.
func (s *Store) PendingPath(pendingID string) string {
	return filepath.Join(s.PendingDir(), pendingID+".json")
}

// VersionPath — путь снимка прошлой версии черновика.
func (s *Store) VersionPath(pendingID string, version int) string {
	return filepath.Join(s.PendingDir(), fmt.Sprintf("%s_v%d.json", pendingID, version))
}

// ReadDocument читает и разбирает JSON-файл курса.
func ReadDocument(path string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("read course file: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse course file: %w", err)
	}
	return doc, nil
}

// WriteDocument пишет документ через временный файл и rename,
// чтобы падение посреди записи не оставило обрезанный JSON.
func WriteDocument(path string, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode course document: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write course document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("finalize course document: %w", err)
	}
	return nil
}

// RemoveFile удаляет файл best-effort.
func RemoveFile(path string) CleanupOutcome {
	err := os.Remove(path)
	switch {
	case err == nil:
		return CleanupDeleted
	case os.IsNotExist(err):
		return CleanupAlreadyAbsent
	default:
		return CleanupFailed
	}
}
