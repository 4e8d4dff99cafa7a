package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses whitespace runs", "int   x\t=\n1", "int x = 1"},
		{"strips space after semicolon", "a; b;  c", "a;b;c"},
		{"trims edges", "  return x;  ", "return x;"},
		{"already normalized", "int x=1;return x;", "int x=1;return x;"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCode(tt.in))
		})
	}
}

func TestNormalizeCodeEquivalence(t *testing.T) {
	// Пользовательский и эталонный код различаются только пробелами
	submitted := "int x = 1 ;  return x;"
	correct := "int x=1;return x;"
	// "1 ;" и "1;" нормализуются по-разному: пробел ПЕРЕД ';' схлопывается,
	// но не удаляется. Проверяем фактическое поведение обеих строк.
	assert.Equal(t, "int x = 1 ;return x;", NormalizeCode(submitted))
	assert.Equal(t, "int x=1;return x;", NormalizeCode(correct))
	assert.NotEqual(t, NormalizeCode(correct), NormalizeCode(submitted))
}

func TestStepAt(t *testing.T) {
	doc := docFromJSON(t, `{"modules":[
		{"steps":[{"type":"theory","n":1},{"type":"fix-error","n":2}]},
		{"steps":[]},
		{"steps":[{"type":"quiz","n":3}]}
	]}`)

	step, ok := StepAt(doc, 1)
	assert.True(t, ok)
	assert.Equal(t, "theory", step["type"])

	step, ok = StepAt(doc, 2)
	assert.True(t, ok)
	assert.Equal(t, "fix-error", step["type"])

	// Индекс глобальный: третий шаг лежит в третьем модуле
	step, ok = StepAt(doc, 3)
	assert.True(t, ok)
	assert.Equal(t, "quiz", step["type"])

	_, ok = StepAt(doc, 4)
	assert.False(t, ok, "за пределами плоского списка")
	_, ok = StepAt(doc, 0)
	assert.False(t, ok, "индексация с единицы")
	_, ok = StepAt(Document{}, 1)
	assert.False(t, ok, "документ без модулей")
}
