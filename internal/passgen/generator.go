// Package passgen assembles passwords from the pools built by package charset.
//
// A password is built in three steps: one character from every enabled class,
// then characters from the combined pool up to the requested length, then a
// Fisher-Yates shuffle so the per-class characters do not sit at fixed
// positions. Every draw is unbiased and comes from the injected source.
package passgen

import (
	"context"
	"crypto/subtle"
	"io"

	"passgen/internal/charset"
	"passgen/internal/errors"
	"passgen/internal/log"
	"passgen/internal/policy"
	"passgen/internal/random"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Generator produces passwords for a policy.
type Generator interface {
	Generate(p policy.Policy) (string, error)
	GenerateMultiple(p policy.Policy, count int) ([]string, error)
}

// SecureGenerator is the Generator backed by a cryptographic source.
// It holds no per-call state and is safe for concurrent use as long as its
// source is.
type SecureGenerator struct {
	src     io.Reader
	workers int
}

var _ Generator = (*SecureGenerator)(nil)

// Option configures a SecureGenerator.
type Option func(*SecureGenerator)

// WithSource replaces the system CSPRNG. The reader must yield
// cryptographically random bytes and be safe for concurrent use when
// workers > 1.
func WithSource(src io.Reader) Option {
	return func(g *SecureGenerator) {
		if src != nil {
			g.src = src
		}
	}
}

// WithWorkers bounds how many passwords GenerateMultiple builds at once.
// Values below 1 are treated as 1.
func WithWorkers(n int) Option {
	return func(g *SecureGenerator) {
		g.workers = max(n, 1)
	}
}

// New returns a SecureGenerator reading from crypto/rand with one worker.
func New(opts ...Option) *SecureGenerator {
	g := &SecureGenerator{
		src:     random.Reader,
		workers: 1,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns one password satisfying p.
//
// Policy errors are reported before any randomness is consumed.
func (g *SecureGenerator) Generate(p policy.Policy) (string, error) {
	pools, err := charset.Build(p)
	if err != nil {
		return "", err
	}

	pw, err := g.assemble(p.Length, pools)
	if err != nil {
		return "", errors.Wrap(err, "generating password")
	}
	return pw, nil
}

// GenerateMultiple returns count independent passwords for p.
//
// It fails on the first error and never returns a partial batch. With more
// than one worker the passwords are built concurrently; their order carries
// no meaning either way.
func (g *SecureGenerator) GenerateMultiple(p policy.Policy, count int) ([]string, error) {
	if count < 0 {
		return nil, errors.NewPolicyError("count", "password count must not be negative")
	}
	pools, err := charset.Build(p)
	if err != nil {
		return nil, err
	}

	out := make([]string, count)
	eg, ctx := errgroup.WithContext(context.Background())
	eg.SetLimit(g.workers)
	for i := range count {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pw, err := g.Generate(p)
			if err != nil {
				return err
			}
			out[i] = pw
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		log.Debug("batch generation failed", log.Int("count", count), log.Err(err))
		return nil, err
	}

	log.Debug("batch generated",
		log.Int("count", count),
		log.Int("length", p.Length),
		log.Int("pool", len(pools.Combined)),
		log.Strings("classes", lo.Map(pools.Enabled(), func(c charset.Class, _ int) string {
			return c.String()
		})),
		log.Int("workers", g.workers))
	return out, nil
}

func (g *SecureGenerator) assemble(length int, pools *charset.Pools) (string, error) {
	work := make([]byte, length)
	defer wipe(work)

	buf := work[:0]
	for _, c := range pools.Enabled() {
		ch, err := random.Pick(g.src, pools.Class(c))
		if err != nil {
			return "", err
		}
		buf = append(buf, ch)
	}
	for len(buf) < length {
		ch, err := random.Pick(g.src, pools.Combined)
		if err != nil {
			return "", err
		}
		buf = append(buf, ch)
	}

	if err := random.Shuffle(g.src, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// wipe zeroes b; the constant-time copy keeps the compiler from eliding it.
func wipe(b []byte) {
	if len(b) == 0 {
		return
	}
	subtle.ConstantTimeCopy(1, b, make([]byte, len(b)))
}
