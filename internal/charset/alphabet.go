// Package charset builds the filtered character pools a password is drawn from.
//
// Pools are plain byte slices: every alphabet is printable ASCII, so a byte is
// a character. Building is pure and consumes no randomness.
package charset

// Class identifies one character class. The numeric order is the order in
// which classes are seeded into a password and concatenated into the
// combined pool.
type Class int

const (
	Lower Class = iota
	Upper
	Numbers
	Symbols

	numClasses
)

// Classes lists every class in enablement order.
var Classes = [numClasses]Class{Lower, Upper, Numbers, Symbols}

func (c Class) String() string {
	switch c {
	case Lower:
		return "lower"
	case Upper:
		return "upper"
	case Numbers:
		return "numbers"
	case Symbols:
		return "symbols"
	default:
		return "unknown"
	}
}

// Full alphabets.
const (
	LowerAlphabet   = "abcdefghijklmnopqrstuvwxyz"
	UpperAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	NumbersAlphabet = "0123456789"
	// Every ASCII code point in 33..126 that is neither a letter nor a digit.
	SymbolsAlphabet = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

// Legible alphabets used when ambiguous characters are excluded.
// Symbols have no legible variant.
const (
	LowerLegible   = "abcdefghjkmnpqrstuvwxyz"
	UpperLegible   = "ABCDEFGHJKMNPQRSTUVWXYZ"
	NumbersLegible = "23456789"
)

// Ambiguous holds the characters dropped by the legible alphabets.
const Ambiguous = "iIlLoO10"

// MinCombined is the smallest number of distinct characters a combined pool
// may hold.
const MinCombined = 10

// base returns the alphabet for c before exclusions are applied.
func base(c Class, legible bool) string {
	switch c {
	case Lower:
		if legible {
			return LowerLegible
		}
		return LowerAlphabet
	case Upper:
		if legible {
			return UpperLegible
		}
		return UpperAlphabet
	case Numbers:
		if legible {
			return NumbersLegible
		}
		return NumbersAlphabet
	case Symbols:
		return SymbolsAlphabet
	default:
		return ""
	}
}
