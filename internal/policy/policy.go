// Package policy defines the options that drive password generation.
package policy

import (
	"os"

	"passgen/internal/errors"

	"sigs.k8s.io/yaml"
)

// Length bounds, inclusive.
const (
	MinLength = 8
	MaxLength = 64

	DefaultLength = 16
)

// Policy configures a single generation call.
//
// At least one class (Lower, Upper, Numbers or Symbols) must be enabled and
// Length must lie in [MinLength, MaxLength].
type Policy struct {
	Length           int    `json:"length"`
	Lower            bool   `json:"lower"`
	Upper            bool   `json:"upper"`
	Numbers          bool   `json:"numbers"`
	Symbols          bool   `json:"symbols"`
	Exclude          string `json:"exclude,omitempty"`          // Characters removed from every pool
	ExcludeAmbiguous bool   `json:"excludeAmbiguous,omitempty"` // Drop visually confusable characters
}

// Default returns the policy used when nothing is configured: 16 characters,
// all classes enabled, nothing excluded.
func Default() Policy {
	return Policy{
		Length:  DefaultLength,
		Lower:   true,
		Upper:   true,
		Numbers: true,
		Symbols: true,
	}
}

// AnyClass reports whether at least one character class is enabled.
func (p Policy) AnyClass() bool {
	return p.Lower || p.Upper || p.Numbers || p.Symbols
}

// Validate checks the parts of the policy that do not depend on the alphabets.
func (p Policy) Validate() error {
	if p.Length < MinLength || p.Length > MaxLength {
		return errors.NewPolicyError("length", "password length must be between 8-64 characters")
	}
	if !p.AnyClass() {
		return errors.NewPolicyError("classes", "at least one character set must be enabled")
	}
	return nil
}

// Parse decodes a YAML or JSON policy document. Fields absent from the
// document keep their Default values.
func Parse(data []byte) (Policy, error) {
	p := Default()
	if err := yaml.UnmarshalStrict(data, &p); err != nil {
		return Policy{}, errors.Wrap(err, "parsing policy")
	}
	return p, nil
}

// LoadFile reads a policy document from path.
func LoadFile(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, errors.Wrap(err, "reading policy file")
	}
	return Parse(data)
}
