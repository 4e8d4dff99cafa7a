package content

import (
	"regexp"
	"strings"
)

var (
	whitespaceRuns  = regexp.MustCompile(`\s+`)
	semicolonSpaces = regexp.MustCompile(`;\s*`)
)

// NormalizeCode приводит код к каноническому виду перед сравнением:
// схлопывает пробелы, убирает пробелы после ';', обрезает края.
func NormalizeCode(code string) string {
	code = whitespaceRuns.ReplaceAllString(code, " ")
	code = semicolonSpaces.ReplaceAllString(code, ";")
	return strings.TrimSpace(code)
}

// StepAt находит шаг по глобальному 1-based индексу в плоском списке
// шагов всех модулей (как flatSteps на фронте).
func StepAt(doc Document, index int) (map[string]interface{}, bool) {
	if index < 1 {
		return nil, false
	}
	modules, _ := doc["modules"].([]interface{})
	pos := 0
	for _, m := range modules {
		module, _ := m.(map[string]interface{})
		steps, _ := module["steps"].([]interface{})
		for _, s := range steps {
			pos++
			if pos == index {
				step, ok := s.(map[string]interface{})
				return step, ok
			}
		}
	}
	return nil, false
}
