package pyfmt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStr(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "'hello'"},
		{"it's", `"it's"`},
		{`say "hi"`, `'say "hi"'`},
		{`both ' and "`, `'both \' and "'`},
		{"a\nb", `'a\nb'`},
		{`back\slash`, `'back\\slash'`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Str(tt.in), tt.in)
	}
}

func TestNumbers(t *testing.T) {
	assert.Equal(t, "10.0", Float(10))
	assert.Equal(t, "3.14", Float(3.14))
	assert.Equal(t, "1e+21", Float(1e21))
	assert.Equal(t, "inf", Float(math.Inf(1)))
	assert.Equal(t, "42", Number(42))
	assert.Equal(t, "-7", Number(-7))
	assert.Equal(t, "2.5", Number(2.5))
}

func TestCollections(t *testing.T) {
	assert.Equal(t, "['apple', 'banana']", Strings([]string{"apple", "banana"}))
	assert.Equal(t, "[]", Strings(nil))
	assert.Equal(t, "[1, 2, 3]", Ints([]int{1, 2, 3}))
	assert.Equal(t, "{'a', 'b'}", Set([]string{"b", "a"}))
	assert.Equal(t, "set()", Set(nil))
	assert.Equal(t, "{'name': 'Alice', 'age': 25}", Dict(
		[]string{"name", "age"},
		map[string]string{"name": Str("Alice"), "age": "25"},
	))
	assert.Equal(t, "True", Bool(true))
}
