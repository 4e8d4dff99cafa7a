package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

// документ из JSON-литерала, как он придёт после json.Unmarshal
func docFromJSON(t *testing.T, raw string) Document {
	t.Helper()
	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("docFromJSON: %v", err)
	}
	return doc
}

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{
			name:    "no modules field",
			raw:     `{"title":"Go"}`,
			wantErr: ErrModulesNotArray,
		},
		{
			name:    "modules is not an array",
			raw:     `{"modules":{"a":1}}`,
			wantErr: ErrModulesNotArray,
		},
		{
			name:    "empty modules ok",
			raw:     `{"modules":[]}`,
			wantErr: nil,
		},
		{
			name:    "module without steps",
			raw:     `{"modules":[{"title":"m1"}]}`,
			wantErr: ErrStepsNotArray,
		},
		{
			name:    "later module without steps still fails",
			raw:     `{"modules":[{"steps":[]},{"title":"m2"}]}`,
			wantErr: ErrStepsNotArray,
		},
		{
			name:    "fix-error step without initialCode",
			raw:     `{"modules":[{"steps":[{"type":"fix-error","correctCode":"x"}]}]}`,
			wantErr: ErrEmptyInitialCode,
		},
		{
			name:    "fix-error step with blank correctCode",
			raw:     `{"modules":[{"steps":[{"type":"fix-error","initialCode":"x","correctCode":"   "}]}]}`,
			wantErr: ErrEmptyCorrectCode,
		},
		{
			name:    "non fix-error step needs no code",
			raw:     `{"modules":[{"steps":[{"type":"theory","text":"hello"}]}]}`,
			wantErr: nil,
		},
		{
			name:    "valid fix-error step",
			raw:     `{"modules":[{"steps":[{"type":"fix-error","initialCode":"a","correctCode":"b"}]}]}`,
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(docFromJSON(t, tt.raw))
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDocumentStopsAtFirstViolation(t *testing.T) {
	// Второй модуль тоже невалиден, но отдаётся первая ошибка
	doc := docFromJSON(t, `{"modules":[
		{"steps":[{"type":"fix-error","correctCode":"x"}]},
		{"title":"no steps"}
	]}`)
	assert.ErrorIs(t, ValidateDocument(doc), ErrEmptyInitialCode)
}
