package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringArrayValue(t *testing.T) {
	t.Run("nil serializes as empty array", func(t *testing.T) {
		var a StringArray
		v, err := a.Value()
		require.NoError(t, err)
		assert.Equal(t, "[]", v)
	})

	t.Run("values serialize as json", func(t *testing.T) {
		a := StringArray{"実験経済学", "フィールド調査"}
		v, err := a.Value()
		require.NoError(t, err)
		assert.Equal(t, `["実験経済学","フィールド調査"]`, v)
	})
}

func TestStringArrayScan(t *testing.T) {
	cases := []struct {
		name  string
		input interface{}
		want  StringArray
	}{
		{"nil", nil, StringArray{}},
		{"empty string", "", StringArray{}},
		{"null literal", "null", StringArray{}},
		{"json array", `["a","b"]`, StringArray{"a", "b"}},
		{"json array bytes", []byte(`["a"]`), StringArray{"a"}},
		{"quoted single string", `"solo"`, StringArray{"solo"}},
		{"quoted empty string", `""`, StringArray{}},
		{"legacy raw string", "plain text", StringArray{"plain text"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var a StringArray
			require.NoError(t, a.Scan(tc.input))
			assert.Equal(t, tc.want, a)
		})
	}
}

func TestStringArrayScanUnsupportedType(t *testing.T) {
	var a StringArray
	assert.Error(t, a.Scan(42))
}

func TestStringArrayRoundTrip(t *testing.T) {
	orig := StringArray{"ESGスコア", "業界特性", "規制環境"}
	v, err := orig.Value()
	require.NoError(t, err)

	var scanned StringArray
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, orig, scanned)
}
