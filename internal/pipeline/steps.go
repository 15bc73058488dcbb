package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/xorcrack/internal/codec"
	"github.com/nao1215/xorcrack/internal/cracker"
	"github.com/nao1215/xorcrack/internal/model"
)

// DecodeStep turns the hex text of a line into ciphertext bytes and
// fingerprints them.
type DecodeStep struct{}

// NewDecodeStep creates a DecodeStep.
func NewDecodeStep() *DecodeStep {
	return &DecodeStep{}
}

// Name returns the step name.
func (s *DecodeStep) Name() string {
	return "decode"
}

// Do decodes result.Hex.
func (s *DecodeStep) Do(_ context.Context, result *model.LineResult) error {
	cipher, err := codec.DecodeHex(result.Hex)
	if err != nil {
		return err
	}
	result.Ciphertext = cipher
	result.Fingerprint = model.Fingerprint(cipher)
	return nil
}

// DecryptionLookup finds a stored decryption for a ciphertext fingerprint
// cracked with the given rank depth. The database.ResultDB implements it.
type DecryptionLookup interface {
	LookupDecryption(ctx context.Context, fingerprint string, rankDepth int) (model.Decryption, bool, error)
}

// CacheStep reuses a decryption from an earlier run when the same
// ciphertext was cracked with the same rank depth before.
type CacheStep struct {
	lookup    DecryptionLookup
	rankDepth int
	logger    *slog.Logger
}

// NewCacheStep creates a CacheStep. A nil logger selects slog.Default().
func NewCacheStep(lookup DecryptionLookup, rankDepth int, logger *slog.Logger) *CacheStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &CacheStep{lookup: lookup, rankDepth: rankDepth, logger: logger}
}

// Name returns the step name.
func (s *CacheStep) Name() string {
	return "cache"
}

// Do looks the ciphertext up. Lookup failures only disable the cache for
// this line; they never fail it.
func (s *CacheStep) Do(ctx context.Context, result *model.LineResult) error {
	if result.Fingerprint == "" {
		return nil
	}

	d, ok, err := s.lookup.LookupDecryption(ctx, result.Fingerprint, s.rankDepth)
	if err != nil {
		s.logger.Warn("history lookup failed",
			"source", result.Source,
			"line", result.Line,
			"error", err,
		)
		return nil
	}
	if ok {
		result.SetDecryption(d, true)
	}
	return nil
}

// CrackStep runs the frequency cracker on the decoded ciphertext.
type CrackStep struct {
	cracker *cracker.Cracker
}

// NewCrackStep creates a CrackStep. A nil cracker selects the defaults.
func NewCrackStep(c *cracker.Cracker) *CrackStep {
	if c == nil {
		c = cracker.New()
	}
	return &CrackStep{cracker: c}
}

// Name returns the step name.
func (s *CrackStep) Name() string {
	return "crack"
}

// Do cracks result.Ciphertext unless a decryption is already present.
func (s *CrackStep) Do(_ context.Context, result *model.LineResult) error {
	if result.Succeeded() || result.Ciphertext == nil {
		return nil
	}

	d, err := s.cracker.CrackOne(result.Ciphertext)
	if err != nil {
		return err
	}
	result.SetDecryption(d, false)
	return nil
}

// NewCrackPipeline builds the standard line pipeline: decode, then the
// history lookup when lookup is non-nil, then crack.
func NewCrackPipeline(c *cracker.Cracker, lookup DecryptionLookup, logger *slog.Logger) *Pipeline {
	if c == nil {
		c = cracker.New(cracker.WithLogger(logger))
	}

	p := New(WithLogger(logger))
	p.AddStep(NewDecodeStep())
	if lookup != nil {
		p.AddStep(NewCacheStep(lookup, c.RankDepth(), logger))
	}
	p.AddStep(NewCrackStep(c))
	return p
}
