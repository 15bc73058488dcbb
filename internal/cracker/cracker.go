package cracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/nao1215/xorcrack/internal/codec"
	"github.com/nao1215/xorcrack/internal/freq"
	"github.com/nao1215/xorcrack/internal/model"
	"github.com/nao1215/xorcrack/internal/xorcipher"
	"golang.org/x/sync/errgroup"
)

// DefaultRankDepth selects the two most frequent ciphertext bytes.
const DefaultRankDepth = 1

// DefaultConcurrency is the number of ciphertexts cracked in parallel by
// CrackBestConcurrent.
const DefaultConcurrency = 8

// ErrNoCiphertext is returned when a batch operation receives no input.
var ErrNoCiphertext = errors.New("no ciphertext to crack")

// Cracker breaks single-byte XOR ciphertexts.
// The zero value is not usable; create one with New.
type Cracker struct {
	letters     []byte
	rankDepth   int
	concurrency int
	logger      *slog.Logger
}

// Option configures a Cracker.
type Option func(*Cracker)

// WithRankDepth sets how many ranked histogram entries beyond the most
// frequent one are used to guess keys.
func WithRankDepth(depth int) Option {
	return func(c *Cracker) {
		c.rankDepth = depth
	}
}

// WithLetters replaces the assumed common-letter table.
// An empty table is ignored.
func WithLetters(letters []byte) Option {
	return func(c *Cracker) {
		if len(letters) > 0 {
			c.letters = append([]byte(nil), letters...)
		}
	}
}

// WithConcurrency sets the parallelism of CrackBestConcurrent.
// Non-positive values are ignored.
func WithConcurrency(n int) Option {
	return func(c *Cracker) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cracker) {
		c.logger = logger
	}
}

// New creates a Cracker. Without options it uses the fixed English letter
// table and DefaultRankDepth.
func New(opts ...Option) *Cracker {
	c := &Cracker{
		letters:     freq.AssumedLetters(),
		rankDepth:   DefaultRankDepth,
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// RankDepth returns the configured rank depth.
func (c *Cracker) RankDepth() int {
	return c.rankDepth
}

// Candidates decrypts cipher with every candidate key and returns the
// scored decryptions in generation order.
func (c *Cracker) Candidates(cipher []byte) ([]model.Decryption, error) {
	keys, err := freq.GenerateCandidates(c.letters, freq.Build(cipher), c.rankDepth)
	if err != nil {
		return nil, err
	}

	decryptions := make([]model.Decryption, 0, len(keys))
	for _, k := range keys {
		plain := xorcipher.ApplyByte(cipher, k.Key)
		decryptions = append(decryptions, model.Decryption{
			Text:        codec.BytesToText(plain),
			Score:       freq.Score(plain),
			Key:         k.Key,
			SourceByte:  k.Source,
			SourceCount: k.Count,
			ValidUTF8:   utf8.Valid(plain),
		})
	}
	return decryptions, nil
}

// CrackOne returns the best scoring decryption of cipher.
// The first candidate in generation order wins ties.
func (c *Cracker) CrackOne(cipher []byte) (model.Decryption, error) {
	candidates, err := c.Candidates(cipher)
	if err != nil {
		return model.Decryption{}, err
	}

	best := 0
	for i := 1; i < len(candidates); i++ {
		if candidates[i].Score > candidates[best].Score {
			best = i
		}
	}

	c.logger.Debug("cracked ciphertext",
		"length", len(cipher),
		"candidates", len(candidates),
		"score", candidates[best].Score,
		"key", candidates[best].Key,
	)

	return candidates[best], nil
}

// CrackBest cracks every ciphertext in order and returns the overall best
// decryption. A later ciphertext replaces the current best only with a
// strictly greater score. The first failure aborts the batch.
func (c *Cracker) CrackBest(ciphers [][]byte) (model.Decryption, error) {
	if len(ciphers) == 0 {
		return model.Decryption{}, ErrNoCiphertext
	}

	var best *model.Decryption
	for i, cipher := range ciphers {
		d, err := c.CrackOne(cipher)
		if err != nil {
			return model.Decryption{}, fmt.Errorf("ciphertext %d: %w", i, err)
		}
		if d.Better(best) {
			best = &d
		}
	}
	return *best, nil
}

// CrackBestConcurrent is CrackBest with ciphertexts cracked in parallel.
// Results are gathered by index and reduced in input order afterwards, so
// the winner is the same one CrackBest would return. The first failure
// cancels the remaining work.
func (c *Cracker) CrackBestConcurrent(ctx context.Context, ciphers [][]byte) (model.Decryption, error) {
	if len(ciphers) == 0 {
		return model.Decryption{}, ErrNoCiphertext
	}

	startTime := time.Now()
	results := make([]model.Decryption, len(ciphers))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, cipher := range ciphers {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			d, err := c.CrackOne(cipher)
			if err != nil {
				return fmt.Errorf("ciphertext %d: %w", i, err)
			}
			results[i] = d
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return model.Decryption{}, err
	}

	best := 0
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[best].Score {
			best = i
		}
	}

	c.logger.Debug("cracked batch",
		"ciphertexts", len(ciphers),
		"concurrency", c.concurrency,
		"elapsed", time.Since(startTime),
	)

	return results[best], nil
}

// CrackOne cracks cipher with the fixed English letter table and
// DefaultRankDepth.
func CrackOne(cipher []byte) (model.Decryption, error) {
	return New().CrackOne(cipher)
}

// CrackBest cracks every ciphertext with the default settings and returns
// the overall best decryption.
func CrackBest(ciphers [][]byte) (model.Decryption, error) {
	return New().CrackBest(ciphers)
}
