package skill

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NormalizesAndDedupes(t *testing.T) {
	s := New("python", " Python ", "PYTHON", "react native", "", "  ")

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"Python", "React Native"}, s.Names())
}

func TestSet_ZeroValueIsEmpty(t *testing.T) {
	var s Set
	assert.True(t, s.IsEmpty())
	assert.False(t, s.Contains("go"))
	assert.Empty(t, s.Names())
}

func TestSet_ContainsNormalizesQuery(t *testing.T) {
	s := New("Machine Learning")
	assert.True(t, s.Contains("  machine   LEARNING"))
	assert.False(t, s.Contains("machine"))
}

func TestFromAny(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{name: "nil", in: nil, want: []string{}},
		{name: "string is not a list", in: "python", want: []string{}},
		{name: "number", in: 42.0, want: []string{}},
		{name: "map", in: map[string]any{"a": "b"}, want: []string{}},
		{name: "string slice", in: []string{"go", "sql"}, want: []string{"Go", "Sql"}},
		{name: "mixed list skips non strings", in: []any{"go", 1.0, nil, "sql", true}, want: []string{"Go", "Sql"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromAny(tt.in).Names())
		})
	}
}

func TestSet_Split(t *testing.T) {
	required := New("sql", "python", "docker")
	candidate := New("Python", "SQL", "Excel")

	present, missing := required.Split(candidate)
	assert.Equal(t, []string{"Python", "Sql"}, present)
	assert.Equal(t, []string{"Docker"}, missing)
}

func TestSet_JSONRoundTrip(t *testing.T) {
	s := New("go", "postgres")
	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `["Go","Postgres"]`, string(b))

	var back Set
	require.NoError(t, json.Unmarshal([]byte(`["go"," GO ","kafka"]`), &back))
	assert.Equal(t, []string{"Go", "Kafka"}, back.Names())
}
