package charset

import (
	"unicode/utf8"

	"passgen/internal/errors"
	"passgen/internal/policy"

	"github.com/samber/lo"
)

// Pools holds the filtered alphabets for one policy.
type Pools struct {
	// Combined is every enabled class pool concatenated in class order.
	Combined []byte

	classes [numClasses][]byte
}

// Class returns the filtered pool for c, empty when c is disabled.
func (p *Pools) Class(c Class) []byte {
	if c < 0 || c >= numClasses {
		return nil
	}
	return p.classes[c]
}

// Enabled returns the classes with a non-empty pool, in class order.
func (p *Pools) Enabled() []Class {
	return lo.Filter(Classes[:], func(c Class, _ int) bool {
		return len(p.classes[c]) > 0
	})
}

// Build validates p and derives its character pools.
//
// It fails with a *errors.PolicyError when the policy as a whole can not be
// satisfied and with a *errors.ClassError naming the first enabled class
// whose alphabet was excluded entirely.
func Build(p policy.Policy) (*Pools, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	enabled := [numClasses]bool{p.Lower, p.Upper, p.Numbers, p.Symbols}
	excluded := asciiSet(p.Exclude)

	pools := &Pools{}
	for _, c := range Classes {
		if !enabled[c] {
			continue
		}
		pool := lo.Without([]byte(base(c, p.ExcludeAmbiguous)), excluded...)
		if len(pool) == 0 {
			return nil, errors.NewClassError(c.String())
		}
		pools.classes[c] = pool
		pools.Combined = append(pools.Combined, pool...)
	}

	// Unreachable while every enabled class is checked above; kept so the
	// combined pool never reaches the assembler empty.
	if len(pools.Combined) == 0 {
		return nil, errors.NewPolicyError("pool", "all enabled character sets are empty after exclusions")
	}
	if len(lo.Uniq(pools.Combined)) < MinCombined {
		return nil, errors.NewPolicyError("pool", "combined character set too small after exclusions (min 10)")
	}

	return pools, nil
}

// asciiSet returns the distinct ASCII characters of s. Anything outside ASCII
// can not occur in a pool and is dropped.
func asciiSet(s string) []byte {
	return lo.Uniq(lo.FilterMap([]rune(s), func(r rune, _ int) (byte, bool) {
		return byte(r), r < utf8.RuneSelf
	}))
}
