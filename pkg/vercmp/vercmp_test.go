package vercmp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_FixedWidth(t *testing.T) {
	inputs := []string{
		"", "1", "1.0", "1.0.0", "1.0.0.0", "11.22.33", "2.0",
		"1.0-SNAPSHOT", "v1", "weird", "999.999.999", "1000.0.0", "...",
	}
	for _, in := range inputs {
		key := Normalize(in)
		assert.Len(t, key, 9, "input %q", in)
		for _, r := range key {
			assert.True(t, r >= '0' && r <= '9', "input %q produced non-digit key %q", in, key)
		}
	}
}

func TestNormalize_Equivalents(t *testing.T) {
	assert.Equal(t, "001000000", Normalize("v1-SNAPSHOT"))
	assert.Equal(t, "001000000", Normalize("1.0"))
	assert.Equal(t, "001000000", Normalize("1.0.0"))
	assert.Equal(t, Normalize("1.0"), Normalize("1.0-SNAPSHOT"))
}

func TestNormalize_BlankIsZero(t *testing.T) {
	assert.Equal(t, ZeroKey, Normalize(""))
	assert.Equal(t, ZeroKey, Normalize("   "))
	assert.Equal(t, ZeroKey, Normalize("no-digits-at-all"))
}

func TestNormalize_ExtraSegmentsIgnored(t *testing.T) {
	assert.Equal(t, Normalize("1.2.3"), Normalize("1.2.3.4"))
}

func TestNormalize_ClampedSegments(t *testing.T) {
	// Oversized segments clamp instead of widening the key.
	assert.Len(t, Normalize("1000.0.0"), 9)
	assert.Equal(t, "999000000", Normalize("1000.0.0"))
}

func TestCompare_NumericNotLexicographic(t *testing.T) {
	assert.Negative(t, Compare("2.0", "11.0"))
	assert.Negative(t, Compare("1.2.9", "1.3.0"))
	assert.Positive(t, Compare("11.0", "2.0"))
	assert.Zero(t, Compare("1.0", "1.0.0"))
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsNewerThan("1.0.1", "1.0.0"))
	assert.False(t, IsNewerThan("1.0.0", "1.0.0"))
	assert.True(t, IsOlderThan("1.0.0", "1.0.1"))
	assert.True(t, IsAtLeast("1.0.0", "1.0.0"))
	assert.True(t, IsAtLeast("1.0.1", "1.0.0"))
	assert.True(t, IsAtMost("1.0.0", "1.0.0"))
	assert.True(t, IsAtMost("0.9", "1.0.0"))
	assert.True(t, IsExactly("1.0", "1.0.0"))
	assert.False(t, IsExactly("1.0", "1.0.1"))
}

func TestMajor(t *testing.T) {
	assert.Equal(t, 1, Major("1.0.0"))
	assert.Equal(t, 11, Major("11.2-beta"))
	assert.Equal(t, 2, Major("v2"))
	assert.Equal(t, 0, Major(""))
	assert.Equal(t, 0, Major("nope"))
}
