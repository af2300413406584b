package strategy

import (
	"github.com/propforge/propforge/pkg/rng"
)

const (
	lowerChars = "abcdefghijklmnopqrstuvwxyz"
	alphaChars = lowerChars + "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	alnumChars = alphaChars + "0123456789"
	// Printable ASCII without control characters.
	printableLow  = 0x20
	printableHigh = 0x7e
)

// String generates printable ASCII strings of up to 100 runes. Strings
// shrink toward shorter length and toward the canonical low rune 'a'.
func String() Strategy[string] {
	return runeString("String", func(r *rng.Source) rune {
		return rune(printableLow + r.Intn(printableHigh-printableLow+1))
	}, 0)
}

// AlphaString generates strings of ASCII letters.
func AlphaString() Strategy[string] {
	return runeString("AlphaString", func(r *rng.Source) rune {
		return rune(alphaChars[r.Intn(len(alphaChars))])
	}, 0)
}

// Identifier generates non-empty strings that start with a lowercase
// letter followed by letters and digits.
func Identifier() Strategy[string] {
	return named[string]{
		name: "Identifier",
		draw: func(r *rng.Source) (Sample[string], error) {
			// Runes stay fixed so every shrink candidate is still a
			// valid identifier; only the length shrinks.
			n := 1 + r.Intn(defaultMaxLen)
			runes := make([]Sample[rune], n)
			runes[0] = Leaf(rune(lowerChars[r.Intn(len(lowerChars))]))
			for i := 1; i < n; i++ {
				runes[i] = Leaf(rune(alnumChars[r.Intn(len(alnumChars))]))
			}
			// Length shrinks can strip the leading letter; prune those
			// candidates so the whole lineage stays a valid identifier.
			return filterSample(stringSample(runes, 1), isIdentifier), nil
		},
	}
}

// Rune generates printable ASCII runes, shrinking toward 'a'.
func Rune() Strategy[rune] {
	return infallible("Rune", func(r *rng.Source) Sample[rune] {
		return runeSample(rune(printableLow + r.Intn(printableHigh-printableLow+1)))
	})
}

// isIdentifier reports whether s starts with a lowercase letter.
func isIdentifier(s string) bool {
	return s != "" && s[0] >= 'a' && s[0] <= 'z'
}

// runeString builds a variable-length string strategy from a rune picker.
func runeString(name string, pick func(r *rng.Source) rune, minLen int) Strategy[string] {
	return named[string]{
		name: name,
		draw: func(r *rng.Source) (Sample[string], error) {
			n := minLen + r.Intn(defaultMaxLen-minLen+1)
			runes := make([]Sample[rune], n)
			for i := range runes {
				runes[i] = runeSample(pick(r))
			}
			return stringSample(runes, minLen), nil
		},
	}
}

// stringSample reuses slice shrinking over the string's runes: length
// shrinks first, then individual runes move toward 'a'.
func stringSample(runes []Sample[rune], minLen int) Sample[string] {
	return mapSample(sliceSample(runes, minLen), func(rs []rune) string {
		return string(rs)
	})
}

// runeSample shrinks a rune toward 'a' by halving the distance, keeping
// candidates inside the printable range.
func runeSample(v rune) Sample[rune] {
	const target = 'a'
	if v == target {
		return Leaf(v)
	}
	return NewSample(v, func(yield func(Sample[rune]) bool) {
		if !yield(Leaf(rune(target))) {
			return
		}
		for offset := (v - target) / 2; offset != 0; offset /= 2 {
			c := v - offset
			if c < printableLow || c > printableHigh {
				continue
			}
			if !yield(runeSample(c)) {
				return
			}
		}
	})
}
