package content

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/s/eduPlat/internal/models"
)

var (
	ErrPendingNotFound = errors.New("pending course not found")
	ErrInvalidIDPrefix = errors.New("invalid pending ID prefix")
	ErrInvalidIDFormat = errors.New("invalid pending ID format")
)

// Дефолты нового курса.
const (
	DefaultDifficulty    = "Beginner"
	DefaultPrerequisites = "None"
	DefaultStatus        = "draft"
)

// DraftPatch — частичное обновление черновика из тела запроса.
// Пустое строковое поле считается отсутствующим (приоритет:
// явное значение > сохранённое ранее > дефолт).
type DraftPatch struct {
	ID               string                 `json:"id"`
	OriginalCourseID *uint                  `json:"original_course_id"`
	Title            string                 `json:"title"`
	Description      string                 `json:"description"`
	FullDescription  string                 `json:"fulldescription"`
	Difficulty       string                 `json:"difficulty"`
	Modules          []interface{}          `json:"modules"`
	Objectives       []interface{}          `json:"objectives"`
	Instructor       map[string]interface{} `json:"instructor"`
	Status           string                 `json:"status"`
	Prerequisites    string                 `json:"prerequisites"`
	Version          int                    `json:"version"`
}

// ParseDraftID разбирает префиксный идентификатор черновика:
// "n<id>" — публикация создаст новый курс, "c<id>" — обновит существующий.
func ParseDraftID(id string) (kind string, courseID uint, err error) {
	if len(id) < 2 {
		return "", 0, ErrInvalidIDPrefix
	}
	switch id[0] {
	case 'n':
		kind = models.TargetNew
	case 'c':
		kind = models.TargetUpdate
	default:
		return "", 0, ErrInvalidIDPrefix
	}
	n, convErr := strconv.ParseUint(id[1:], 10, 32)
	if convErr != nil {
		return "", 0, ErrInvalidIDFormat
	}
	return kind, uint(n), nil
}

// MergeDocument накладывает патч поверх сохранённого документа.
// Поля, которых нет ни в патче, ни в списке известных, сохраняются как есть.
func MergeDocument(existing Document, patch DraftPatch, author models.SessionUser) Document {
	doc := Document{}
	for k, v := range existing {
		doc[k] = v
	}
	doc["id"] = patch.ID
	doc["title"] = firstNonEmpty(patch.Title, docString(existing, "title"), "")
	doc["description"] = firstNonEmpty(patch.Description, docString(existing, "description"), "")
	doc["fulldescription"] = firstNonEmpty(patch.FullDescription, docString(existing, "fulldescription"), "")
	doc["difficulty"] = firstNonEmpty(patch.Difficulty, docString(existing, "difficulty"), DefaultDifficulty)
	doc["prerequisites"] = firstNonEmpty(patch.Prerequisites, docString(existing, "prerequisites"), DefaultPrerequisites)
	doc["status"] = firstNonEmpty(patch.Status, docString(existing, "status"), DefaultStatus)
	doc["creator_id"] = author.ID

	if patch.Modules != nil {
		doc["modules"] = patch.Modules
	} else if existing["modules"] == nil {
		doc["modules"] = []interface{}{}
	}

	// Objectives патч всегда побеждает, сохранённые не подтягиваются.
	if patch.Objectives != nil {
		doc["objectives"] = patch.Objectives
	} else {
		doc["objectives"] = []interface{}{}
	}

	if patch.Instructor != nil {
		doc["instructor"] = patch.Instructor
	} else if existing["instructor"] == nil {
		doc["instructor"] = defaultInstructor(author)
	}

	if patch.OriginalCourseID != nil {
		doc["original_course_id"] = *patch.OriginalCourseID
	} else if existing["original_course_id"] == nil {
		doc["original_course_id"] = nil
	}
	return doc
}

// ForkDocument делает черновик из опубликованного курса.
func ForkDocument(original Document, draftID string, originalID uint, author models.SessionUser) Document {
	doc := Document{}
	for k, v := range original {
		doc[k] = v
	}
	doc["id"] = draftID
	doc["original_course_id"] = originalID
	doc["status"] = DefaultStatus
	doc["creator_id"] = author.ID
	return doc
}

// NewDocument собирает документ нового курса с нуля.
func NewDocument(patch DraftPatch, author models.SessionUser) Document {
	doc := Document{
		"id":              patch.ID,
		"title":           patch.Title,
		"description":     patch.Description,
		"fulldescription": patch.FullDescription,
		"difficulty":      firstNonEmpty(patch.Difficulty, DefaultDifficulty),
		"prerequisites":   firstNonEmpty(patch.Prerequisites, DefaultPrerequisites),
		"status":          firstNonEmpty(patch.Status, DefaultStatus),
		"creator_id":      author.ID,
	}
	if patch.Modules != nil {
		doc["modules"] = patch.Modules
	} else {
		doc["modules"] = []interface{}{}
	}
	if patch.Objectives != nil {
		doc["objectives"] = patch.Objectives
	} else {
		doc["objectives"] = []interface{}{}
	}
	if patch.Instructor != nil {
		doc["instructor"] = patch.Instructor
	} else {
		doc["instructor"] = defaultInstructor(author)
	}
	if patch.OriginalCourseID != nil {
		doc["original_course_id"] = *patch.OriginalCourseID
	} else {
		doc["original_course_id"] = nil
	}
	return doc
}

// Manager — операции над черновиками: сохранение, версии, публикация.
type Manager struct {
	DB    *gorm.DB
	Files *Store
}

func NewManager(db *gorm.DB, files *Store) *Manager {
	return &Manager{DB: db, Files: files}
}

// Save создаёт или обновляет черновик. Единственный ответ об исходе
// сохранения — возвращённая строка pending_courses с новой версией.
func (m *Manager) Save(author models.SessionUser, patch DraftPatch) (*models.PendingCourse, error) {
	targetKind, targetID, err := ParseDraftID(patch.ID)
	if err != nil {
		return nil, err
	}

	var prev models.PendingCourse
	exists := true
	if err := m.DB.First(&prev, "id = ?", patch.ID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("fetch pending course: %w", err)
		}
		exists = false
	}

	var doc Document
	var prevDoc Document
	switch {
	case exists:
		prevDoc, err = ReadDocument(m.Files.Resolve(prev.JSONPath))
		if err != nil {
			return nil, fmt.Errorf("read existing course file: %w", err)
		}
		doc = MergeDocument(prevDoc, patch, author)
	case patch.OriginalCourseID != nil:
		original, err := ReadDocument(m.Files.CoursePath(*patch.OriginalCourseID))
		if err != nil {
			return nil, fmt.Errorf("read original course file: %w", err)
		}
		doc = ForkDocument(original, patch.ID, *patch.OriginalCourseID, author)
	default:
		doc = NewDocument(patch, author)
	}

	// Валидация до любой записи: невалидный черновик не трогает ни файл, ни БД.
	if err := ValidateDocument(doc); err != nil {
		return nil, err
	}

	newVersion := patch.Version
	if newVersion == 0 {
		if exists {
			newVersion = prev.Version + 1
		} else {
			newVersion = 1
		}
	}

	// Снимок прошлой версии, чтобы course-versions мог её отдать.
	if exists && prevDoc != nil {
		if err := WriteDocument(m.Files.VersionPath(patch.ID, prev.Version), prevDoc); err != nil {
			log.Printf("Failed to snapshot pending course %s v%d: %v", patch.ID, prev.Version, err)
		}
	}

	relPath := m.Files.PendingRel(patch.ID)
	if err := WriteDocument(m.Files.Resolve(relPath), doc); err != nil {
		return nil, fmt.Errorf("save pending course file: %w", err)
	}

	var originalID *uint
	if patch.OriginalCourseID != nil {
		originalID = patch.OriginalCourseID
	} else if exists {
		originalID = prev.OriginalCourseID
	}

	row := models.PendingCourse{
		ID:               patch.ID,
		OriginalCourseID: originalID,
		Title:            docString(doc, "title"),
		Description:      docString(doc, "description"),
		Difficulty:       docString(doc, "difficulty"),
		JSONPath:         relPath,
		CreatorID:        author.ID,
		Status:           docString(doc, "status"),
		TargetKind:       targetKind,
		TargetID:         targetID,
		Version:          newVersion,
		CreatedAt:        time.Now(),
	}
	if err := m.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("upsert pending course: %w", err)
	}
	return &row, nil
}

// PreviousVersion возвращает снимок версии version-1 или nil,
// если черновик на первой версии либо снимка нет.
func (m *Manager) PreviousVersion(pendingID string) (Document, error) {
	var pending models.PendingCourse
	if err := m.DB.First(&pending, "id = ?", pendingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPendingNotFound
		}
		return nil, fmt.Errorf("fetch pending course: %w", err)
	}
	if pending.Version <= 1 {
		return nil, nil
	}
	doc, err := ReadDocument(m.Files.VersionPath(pendingID, pending.Version-1))
	if err != nil {
		// Отсутствие снимка — не ошибка, просто нет предыдущей версии.
		return nil, nil
	}
	return doc, nil
}

// IsValidationError — ошибка про структуру входных данных (ответ 400),
// а не про состояние сервера (ответ 500).
func IsValidationError(err error) bool {
	return errors.Is(err, ErrModulesNotArray) ||
		errors.Is(err, ErrStepsNotArray) ||
		errors.Is(err, ErrEmptyInitialCode) ||
		errors.Is(err, ErrEmptyCorrectCode) ||
		errors.Is(err, ErrInvalidIDPrefix) ||
		errors.Is(err, ErrInvalidIDFormat)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func docString(doc Document, key string) string {
	s, _ := doc[key].(string)
	return s
}

func defaultInstructor(author models.SessionUser) map[string]interface{} {
	return map[string]interface{}{
		"name":  author.Username,
		"title": "Course Author",
	}
}
