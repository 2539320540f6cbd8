package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariantKinds(t *testing.T) {
	assert.Equal(t, []Kind{KindLike, KindNeutral, KindDislike}, VariantClassic.Kinds())
	assert.Equal(t, []Kind{KindLike, KindShare, KindDislike}, VariantShare.Kinds())
}

func TestVariantContains(t *testing.T) {
	assert.True(t, VariantClassic.Contains(KindNeutral))
	assert.False(t, VariantClassic.Contains(KindShare))
	assert.True(t, VariantShare.Contains(KindShare))
	assert.False(t, VariantShare.Contains(KindNeutral))
	assert.False(t, VariantClassic.Contains(KindNone))
}

func TestVariantValid(t *testing.T) {
	assert.True(t, VariantClassic.Valid())
	assert.True(t, VariantShare.Valid())
	assert.False(t, Variant("emoji").Valid())
}

func TestZeroCounts(t *testing.T) {
	counts := ZeroCounts(VariantClassic)
	assert.Equal(t, Counts{KindLike: 0, KindNeutral: 0, KindDislike: 0}, counts)
}

func TestNextCounts_Add(t *testing.T) {
	current := Counts{KindLike: 2, KindNeutral: 0, KindDislike: 1}
	next := NextCounts(current, KindLike, IntentAdd, KindNone)
	assert.Equal(t, Counts{KindLike: 3, KindNeutral: 0, KindDislike: 1}, next)
	// input untouched
	assert.Equal(t, 2, current[KindLike])
}

func TestNextCounts_Switch(t *testing.T) {
	current := Counts{KindLike: 2, KindNeutral: 0, KindDislike: 1}
	next := NextCounts(current, KindDislike, IntentAdd, KindLike)
	assert.Equal(t, Counts{KindLike: 1, KindNeutral: 0, KindDislike: 2}, next)
}

func TestNextCounts_AddSamePreviousIsPlainIncrement(t *testing.T) {
	current := Counts{KindLike: 2, KindNeutral: 0, KindDislike: 1}
	next := NextCounts(current, KindLike, IntentAdd, KindLike)
	assert.Equal(t, Counts{KindLike: 3, KindNeutral: 0, KindDislike: 1}, next)
}

func TestNextCounts_Remove(t *testing.T) {
	current := Counts{KindLike: 2, KindNeutral: 0, KindDislike: 1}
	next := NextCounts(current, KindLike, IntentRemove, KindLike)
	assert.Equal(t, Counts{KindLike: 1, KindNeutral: 0, KindDislike: 1}, next)
}

func TestNextCounts_NeverNegative(t *testing.T) {
	current := ZeroCounts(VariantClassic)
	next := NextCounts(current, KindNeutral, IntentRemove, KindNeutral)
	assert.Equal(t, 0, next[KindNeutral])

	// switch away from a kind whose count already drained to zero
	next = NextCounts(current, KindLike, IntentAdd, KindDislike)
	assert.Equal(t, 1, next[KindLike])
	assert.Equal(t, 0, next[KindDislike])
}

func TestNextCounts_ToggleRestoresOriginal(t *testing.T) {
	original := Counts{KindLike: 5, KindNeutral: 2, KindDislike: 3}
	added := NextCounts(original, KindNeutral, IntentAdd, KindNone)
	removed := NextCounts(added, KindNeutral, IntentRemove, KindNeutral)
	assert.Equal(t, original, removed)
}

func TestMutationDelta(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		intent   Intent
		previous Kind
		wantIncr Kind
		wantDecr Kind
	}{
		{"fresh add", KindLike, IntentAdd, KindNone, KindLike, KindNone},
		{"add same previous", KindLike, IntentAdd, KindLike, KindLike, KindNone},
		{"switch", KindDislike, IntentAdd, KindLike, KindDislike, KindLike},
		{"remove", KindLike, IntentRemove, KindLike, KindNone, KindLike},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			incr, decr := MutationDelta(tt.kind, tt.intent, tt.previous)
			assert.Equal(t, tt.wantIncr, incr)
			assert.Equal(t, tt.wantDecr, decr)
		})
	}
}
