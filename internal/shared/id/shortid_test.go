package id

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWithPrefix(t *testing.T) {
	sid, err := NewPackID()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(sid, "pack_"))
	assert.Len(t, sid, len("pack_")+DefaultLength)
	assert.NoError(t, ValidatePrefix(sid, PrefixPack))
	assert.Error(t, ValidatePrefix(sid, PrefixSubscription))
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for range 200 {
		s, err := Generate(DefaultLength)
		require.NoError(t, err)
		_, dup := seen[s]
		require.False(t, dup)
		seen[s] = struct{}{}
	}
}

func TestValidatePrefix(t *testing.T) {
	assert.NoError(t, ValidatePrefix("sub_abc", PrefixSubscription))
	assert.Error(t, ValidatePrefix("sub_", PrefixSubscription))
	assert.Error(t, ValidatePrefix("subabc", PrefixSubscription))
	assert.Error(t, ValidatePrefix("", PrefixSubscription))
}

func FuzzParsePrefixedID(f *testing.F) {
	for _, seed := range []string{"pack_xK9mP2vL3nQa", "sub_abc", "", "nounderscore", "_lead", "trail_", "a_b_c"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			return
		}

		prefix, shortID, err := ParsePrefixedID(input)
		if !strings.Contains(input, "_") {
			if err == nil {
				t.Errorf("ParsePrefixedID(%q) should fail without underscore", input)
			}
			return
		}
		if err != nil {
			t.Fatalf("ParsePrefixedID(%q) unexpected error: %v", input, err)
		}
		if prefix+"_"+shortID != input {
			t.Errorf("ParsePrefixedID(%q) = %q, %q does not reconstruct input", input, prefix, shortID)
		}
	})
}
