package content

import (
	"errors"
	"strings"
)

// Document — содержимое курса как оно лежит в JSON-файле.
// Структура свободная, неизвестные поля сохраняются как есть.
type Document map[string]interface{}

// Ошибки валидации структуры курса. Тексты отдаются клиенту как есть.
var (
	ErrModulesNotArray  = errors.New("modules must be an array")
	ErrStepsNotArray    = errors.New("steps must be an array")
	ErrEmptyInitialCode = errors.New("initialCode must be a non-empty string")
	ErrEmptyCorrectCode = errors.New("correctCode must be a non-empty string")
)

// ValidateDocument проверяет структурные инварианты курса.
// Останавливается на первом нарушении, ошибки не накапливаются.
func ValidateDocument(doc Document) error {
	modules, ok := doc["modules"].([]interface{})
	if !ok {
		return ErrModulesNotArray
	}

	for _, m := range modules {
		module, ok := m.(map[string]interface{})
		if !ok {
			return ErrStepsNotArray
		}
		steps, ok := module["steps"].([]interface{})
		if !ok {
			return ErrStepsNotArray
		}
		for _, s := range steps {
			step, ok := s.(map[string]interface{})
			if !ok {
				continue
			}
			if err := validateFixErrorStep(step); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateFixErrorStep: шаги другого типа не проверяются.
func validateFixErrorStep(step map[string]interface{}) error {
	if stepType, _ := step["type"].(string); stepType != "fix-error" {
		return nil
	}
	if code, ok := step["initialCode"].(string); !ok || strings.TrimSpace(code) == "" {
		return ErrEmptyInitialCode
	}
	if code, ok := step["correctCode"].(string); !ok || strings.TrimSpace(code) == "" {
		return ErrEmptyCorrectCode
	}
	return nil
}
