package document

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustObject(t *testing.T, input string) *Map {
	t.Helper()
	v, err := Parse([]byte(input))
	require.NoError(t, err)
	obj, ok := Object(v)
	require.True(t, ok)
	return obj
}

func TestMoveAfter(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		key    string
		anchor string
		want   []string
	}{
		{"moves forward", `{"id":1,"name":"X","colors":[],"cyrillic":"Икс"}`, "cyrillic", "name", []string{"id", "name", "cyrillic", "colors"}},
		{"moves backward", `{"cyrillic":"Икс","id":1,"name":"X"}`, "cyrillic", "name", []string{"id", "name", "cyrillic"}},
		{"already placed", `{"name":"X","cyrillic":"Икс","id":1}`, "cyrillic", "name", []string{"name", "cyrillic", "id"}},
		{"missing anchor", `{"id":1,"cyrillic":"Икс"}`, "cyrillic", "name", []string{"id", "cyrillic"}},
		{"missing key", `{"name":"X","id":1}`, "cyrillic", "name", []string{"name", "id"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := mustObject(t, tt.input)
			MoveAfter(obj, tt.key, tt.anchor)
			if diff := cmp.Diff(tt.want, obj.Keys()); diff != "" {
				t.Errorf("keys mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReorder(t *testing.T) {
	obj := mustObject(t, `{"title":"t","view":"v","id":1,"extra":true}`)
	Reorder(obj, []string{"id", "show", "view"})
	assert.Equal(t, []string{"id", "view", "title", "extra"}, obj.Keys())

	v, _ := obj.Get("title")
	assert.Equal(t, "t", v)
}

func TestAppendUnique(t *testing.T) {
	list, added := AppendUnique([]any{"x75 plus"}, "X75 Plus", "x75 plus", "X75 Plus")
	assert.True(t, added)
	assert.Equal(t, []any{"x75 plus", "X75 Plus"}, list)

	_, added = AppendUnique(list, "X75 Plus")
	assert.False(t, added)
}

func TestEnsureListAndDedup(t *testing.T) {
	assert.Equal(t, []any{"a"}, EnsureList("a"))
	assert.Equal(t, []any{""}, EnsureList(""))
	assert.Equal(t, []any{}, EnsureList(nil))
	assert.Equal(t, []any{"a", "a"}, EnsureList([]any{"a", "a"}))

	assert.Equal(t, []any{"a", "b"}, DedupStrings([]any{"a", "b", "a"}))
}

func TestNonBlank(t *testing.T) {
	obj := mustObject(t, `{"a":"  ","b":"x","c":1}`)

	_, ok := NonBlank(obj, "a")
	assert.False(t, ok)
	s, ok := NonBlank(obj, "b")
	assert.True(t, ok)
	assert.Equal(t, "x", s)
	_, ok = NonBlank(obj, "c")
	assert.False(t, ok)
	_, ok = NonBlank(nil, "b")
	assert.False(t, ok)
}

func TestClone(t *testing.T) {
	obj := mustObject(t, `{"a":{"b":[1,{"c":"d"}]}}`)
	clone, ok := Object(Clone(obj))
	require.True(t, ok)

	inner, _ := clone.Get("a")
	innerObj, _ := Object(inner)
	innerObj.Set("b", "changed")
	innerObj.Set("new", true)

	before, err := Encode(obj, "")
	require.NoError(t, err)
	assert.Equal(t, `{"a":{"b":[1,{"c":"d"}]}}`+"\n", string(before))

	after, err := Encode(clone, "")
	require.NoError(t, err)
	assert.Equal(t, `{"a":{"b":"changed","new":true}}`+"\n", string(after))
}
