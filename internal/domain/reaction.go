package domain

// Kind is one member of the fixed reaction enumeration for a deployment.
type Kind string

const (
	KindLike    Kind = "like"
	KindNeutral Kind = "neutral"
	KindDislike Kind = "dislike"
	KindShare   Kind = "share"

	// KindNone marks the absence of a reaction (no marker, no previousKind).
	KindNone Kind = ""
)

// Intent describes what a mutation request wants to do with a reaction.
type Intent string

const (
	IntentAdd    Intent = "add"
	IntentRemove Intent = "remove"
)

// Variant selects which fixed kind set a deployment uses. The set is fixed at
// deploy time, never per record.
type Variant string

const (
	// VariantClassic is the like/neutral/dislike set.
	VariantClassic Variant = "classic"
	// VariantShare is the like/share/dislike set. Share is fire-once on the
	// client side but counts like any other kind on the server.
	VariantShare Variant = "share"
)

var variantKinds = map[Variant][]Kind{
	VariantClassic: {KindLike, KindNeutral, KindDislike},
	VariantShare:   {KindLike, KindShare, KindDislike},
}

// Valid reports whether v is a known variant.
func (v Variant) Valid() bool {
	_, ok := variantKinds[v]
	return ok
}

// Kinds returns the fixed kind set of the variant, in display order.
func (v Variant) Kinds() []Kind {
	return variantKinds[v]
}

// Contains reports whether k belongs to the variant's kind set.
func (v Variant) Contains(k Kind) bool {
	for _, kind := range variantKinds[v] {
		if kind == k {
			return true
		}
	}
	return false
}

// Counts is the aggregate reaction record for one content item. A well-formed
// Counts carries every kind of the deployment variant with values >= 0.
type Counts map[Kind]int

// ZeroCounts returns an all-zero record for the variant's kind set.
func ZeroCounts(v Variant) Counts {
	counts := make(Counts, len(variantKinds[v]))
	for _, k := range variantKinds[v] {
		counts[k] = 0
	}
	return counts
}

// Clone returns an independent copy of the counts.
func (c Counts) Clone() Counts {
	out := make(Counts, len(c))
	for k, n := range c {
		out[k] = n
	}
	return out
}

// NextCounts computes the successor record for one mutation. Add with a
// different previous kind is a switch: the new kind gains one and the previous
// kind loses one. Remove takes one away from kind. Decrements floor at zero so
// no count ever goes negative, even against a diverged local marker.
func NextCounts(current Counts, kind Kind, intent Intent, previous Kind) Counts {
	next := current.Clone()
	switch intent {
	case IntentAdd:
		next[kind]++
		if previous != KindNone && previous != kind {
			next[previous] = max(0, next[previous]-1)
		}
	case IntentRemove:
		next[kind] = max(0, next[kind]-1)
	}
	return next
}

// MutationDelta translates a (kind, intent, previous) triple into the pair of
// fields a store touches: incr gains one, decr loses one floored at zero.
// Either may be KindNone.
func MutationDelta(kind Kind, intent Intent, previous Kind) (incr, decr Kind) {
	if intent == IntentRemove {
		return KindNone, kind
	}
	if previous != KindNone && previous != kind {
		return kind, previous
	}
	return kind, KindNone
}
