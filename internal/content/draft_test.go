package content

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/s/eduPlat/internal/models"
)

var testAuthor = models.SessionUser{ID: 7, Username: "alice", Role: models.RoleCreator}

func TestParseDraftID(t *testing.T) {
	tests := []struct {
		id       string
		kind     string
		courseID uint
		wantErr  error
	}{
		{id: "n7", kind: models.TargetNew, courseID: 7},
		{id: "c42", kind: models.TargetUpdate, courseID: 42},
		{id: "x9", wantErr: ErrInvalidIDPrefix},
		{id: "n", wantErr: ErrInvalidIDPrefix},
		{id: "", wantErr: ErrInvalidIDPrefix},
		{id: "nabc", wantErr: ErrInvalidIDFormat},
		{id: "c-5", wantErr: ErrInvalidIDFormat},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			kind, courseID, err := ParseDraftID(tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.courseID, courseID)
		})
	}
}

func TestNewDocumentDefaults(t *testing.T) {
	doc := NewDocument(DraftPatch{ID: "n1", Title: "Go basics"}, testAuthor)

	assert.Equal(t, "n1", doc["id"])
	assert.Equal(t, "Go basics", doc["title"])
	assert.Equal(t, DefaultDifficulty, doc["difficulty"])
	assert.Equal(t, DefaultPrerequisites, doc["prerequisites"])
	assert.Equal(t, DefaultStatus, doc["status"])
	assert.Equal(t, uint(7), doc["creator_id"])
	assert.Equal(t, []interface{}{}, doc["modules"])
	assert.Equal(t, map[string]interface{}{
		"name":  "alice",
		"title": "Course Author",
	}, doc["instructor"])
	assert.Nil(t, doc["original_course_id"])
}

func TestMergeDocumentPrecedence(t *testing.T) {
	existing := docFromJSON(t, `{
		"id": "n1",
		"title": "Old title",
		"description": "Old description",
		"difficulty": "Advanced",
		"modules": [{"steps":[]}],
		"custom_field": "kept as is",
		"instructor": {"name":"bob","title":"Professor"}
	}`)

	patch := DraftPatch{
		ID:    "n1",
		Title: "New title",
		// Description не прислан — остаётся старый
	}
	doc := MergeDocument(existing, patch, testAuthor)

	assert.Equal(t, "New title", doc["title"], "явное значение побеждает")
	assert.Equal(t, "Old description", doc["description"], "отсутствующее берётся из сохранённого")
	assert.Equal(t, "Advanced", doc["difficulty"])
	assert.Equal(t, "kept as is", doc["custom_field"], "неизвестные поля не теряются")
	assert.Equal(t, existing["modules"], doc["modules"], "модули без патча не меняются")
	assert.Equal(t, existing["instructor"], doc["instructor"])
	assert.Equal(t, DefaultStatus, doc["status"], "дефолт, если нигде не задан")
}

func TestMergeDocumentPatchModulesWin(t *testing.T) {
	existing := docFromJSON(t, `{"modules":[{"steps":[{"type":"theory"}]}]}`)
	patch := DraftPatch{
		ID:      "c3",
		Modules: []interface{}{map[string]interface{}{"steps": []interface{}{}}},
	}
	doc := MergeDocument(existing, patch, testAuthor)
	assert.Equal(t, patch.Modules, doc["modules"])
}

func TestMergeDocumentObjectivesNeverInherited(t *testing.T) {
	existing := docFromJSON(t, `{"modules":[],"objectives":["old goal"]}`)

	doc := MergeDocument(existing, DraftPatch{ID: "n1"}, testAuthor)
	assert.Equal(t, []interface{}{}, doc["objectives"], "без патча objectives сбрасываются")

	doc = MergeDocument(existing, DraftPatch{ID: "n1", Objectives: []interface{}{"new goal"}}, testAuthor)
	assert.Equal(t, []interface{}{"new goal"}, doc["objectives"])
}

func TestMergeDocumentIdempotent(t *testing.T) {
	existing := docFromJSON(t, `{
		"id": "n5",
		"title": "Stable",
		"description": "Same",
		"difficulty": "Beginner",
		"modules": []
	}`)
	patch := DraftPatch{ID: "n5", Title: "Stable", Description: "Same", Version: 3}

	first := MergeDocument(existing, patch, testAuthor)
	second := MergeDocument(first, patch, testAuthor)
	assert.Equal(t, first, second)
}

func TestForkDocument(t *testing.T) {
	original := docFromJSON(t, `{
		"id": 42,
		"title": "Published course",
		"modules": [{"steps":[]}],
		"status": "published"
	}`)

	doc := ForkDocument(original, "c42", 42, testAuthor)

	assert.Equal(t, "c42", doc["id"])
	assert.Equal(t, uint(42), doc["original_course_id"])
	assert.Equal(t, DefaultStatus, doc["status"])
	assert.Equal(t, uint(7), doc["creator_id"])
	assert.Equal(t, "Published course", doc["title"])
	// Оригинальный документ не мутирует
	assert.Equal(t, "published", original["status"])
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(ErrModulesNotArray))
	assert.True(t, IsValidationError(ErrInvalidIDPrefix))
	assert.False(t, IsValidationError(ErrPendingNotFound))
	assert.False(t, IsValidationError(ErrDocumentNotFound))
	assert.False(t, IsValidationError(nil))
}
