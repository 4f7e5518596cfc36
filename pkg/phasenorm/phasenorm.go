// Package phasenorm composes the normalization stages into one pipeline:
// split → phase words → property words → chemical names → filter →
// disambiguate → reverse names.
package phasenorm

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cognicore/phasenorm/pkg/phasenorm/chemname"
	"github.com/cognicore/phasenorm/pkg/phasenorm/disambig"
	"github.com/cognicore/phasenorm/pkg/phasenorm/filter"
	"github.com/cognicore/phasenorm/pkg/phasenorm/internalerr"
	"github.com/cognicore/phasenorm/pkg/phasenorm/lexical"
	"github.com/cognicore/phasenorm/pkg/phasenorm/mention"
	"github.com/cognicore/phasenorm/pkg/phasenorm/split"
	"github.com/cognicore/phasenorm/pkg/phasenorm/vocab"
)

// Stage is one pure transformation of a record sequence. Apply must not
// modify its input.
type Stage interface {
	Name() string
	Apply(in []mention.Mention) []mention.Mention
}

// Options configures a Pipeline
type Options struct {
	Tables *vocab.Tables
	Logger *zap.Logger

	FoldUnicode bool
	StripMarkup bool

	// Workers > 1 runs contiguous shards of the input concurrently.
	Workers int
}

// Pipeline is the full normalization chain.
type Pipeline struct {
	stages  []Stage
	logger  *zap.Logger
	workers int

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// StageCount records how many records entered and left a stage.
type StageCount struct {
	Stage string
	In    int
	Out   int
}

// Result is the outcome of one Run.
type Result struct {
	RunID    string
	Mentions []mention.Mention
	Stages   []StageCount
	Elapsed  time.Duration
}

// New builds the pipeline from the tables.
func New(opts Options) (*Pipeline, error) {
	if opts.Tables == nil {
		return nil, fmt.Errorf("%w: nil tables", internalerr.ErrInvalidConfig)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	t := opts.Tables

	onDrop := func(m mention.Mention, stage, reason string) {
		logger.Debug("mention dropped",
			zap.String("stage", stage),
			zap.String("reason", reason),
			zap.String("phase", m.Phase),
			zap.String("property", m.Property))
	}

	merger, err := chemname.NewMerger(t.ChemNames)
	if err != nil {
		return nil, err
	}

	stages := []Stage{
		split.New(),
		lexical.NewPhaseNormalizer(t.PhaseStops, t.Elements, lexical.PhaseOptions{
			FoldUnicode: opts.FoldUnicode,
			OnDrop:      onDrop,
		}),
		lexical.NewPropertyNormalizer(t.PropertyStops, onDrop),
		merger,
		filter.New(filter.Config{
			Elements:        t.Elements,
			PhaseRemove:     t.PhaseRemove,
			PropertyRemove:  t.PropertyRemove,
			PhaseRenames:    t.PhaseRenames,
			PropertyRenames: t.PropertyRenames,
			OnDrop:          onDrop,
		}),
		disambig.New(t.BetaCandidates, disambig.Options{StripMarkup: opts.StripMarkup}),
		filter.NewReverseMapper(t.ReverseNames),
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{
		stages:  stages,
		logger:  logger,
		workers: workers,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}, nil
}

// Stages returns the stages in execution order.
func (p *Pipeline) Stages() []Stage {
	out := make([]Stage, len(p.stages))
	copy(out, p.stages)
	return out
}

// Run normalizes in. The input is never modified.
func (p *Pipeline) Run(ctx context.Context, in []mention.Mention) (Result, error) {
	start := time.Now()
	res := Result{RunID: p.newRunID()}
	log := p.logger.With(zap.String("run_id", res.RunID))
	log.Info("normalization started", zap.Int("mentions", len(in)), zap.Int("workers", p.workers))

	shards := shard(in, p.workers)
	outs := make([][]mention.Mention, len(shards))
	counts := make([][]StageCount, len(shards))

	g, gctx := errgroup.WithContext(ctx)
	for i := range shards {
		g.Go(func() error {
			out, c, err := p.runStages(gctx, shards[i])
			if err != nil {
				return err
			}
			outs[i], counts[i] = out, c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Warn("normalization aborted", zap.Error(err))
		return Result{}, err
	}

	res.Mentions = make([]mention.Mention, 0, len(in))
	for _, out := range outs {
		res.Mentions = append(res.Mentions, out...)
	}
	res.Stages = mergeCounts(p.stages, counts)
	res.Elapsed = time.Since(start)

	for _, c := range res.Stages {
		log.Debug("stage finished", zap.String("stage", c.Stage), zap.Int("in", c.In), zap.Int("out", c.Out))
	}
	log.Info("normalization finished",
		zap.Int("mentions_in", len(in)),
		zap.Int("mentions_out", len(res.Mentions)),
		zap.Duration("elapsed", res.Elapsed))
	return res, nil
}

func (p *Pipeline) runStages(ctx context.Context, recs []mention.Mention) ([]mention.Mention, []StageCount, error) {
	counts := make([]StageCount, 0, len(p.stages))
	for _, s := range p.stages {
		if err := ctx.Err(); err != nil {
			return nil, nil, fmt.Errorf("stage %s: %w", s.Name(), err)
		}
		out := s.Apply(recs)
		counts = append(counts, StageCount{Stage: s.Name(), In: len(recs), Out: len(out)})
		recs = out
	}
	return recs, counts, nil
}

func (p *Pipeline) newRunID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return ulid.MustNew(ulid.Now(), p.entropy).String()
}

// shard cuts in into at most n contiguous, non-empty slices.
func shard(in []mention.Mention, n int) [][]mention.Mention {
	if n > len(in) {
		n = len(in)
	}
	if n <= 1 {
		return [][]mention.Mention{in}
	}
	size := (len(in) + n - 1) / n
	out := make([][]mention.Mention, 0, n)
	for start := 0; start < len(in); start += size {
		end := min(start+size, len(in))
		out = append(out, in[start:end])
	}
	return out
}

func mergeCounts(stages []Stage, perShard [][]StageCount) []StageCount {
	total := make([]StageCount, len(stages))
	for i, s := range stages {
		total[i].Stage = s.Name()
	}
	for _, counts := range perShard {
		for i, c := range counts {
			total[i].In += c.In
			total[i].Out += c.Out
		}
	}
	return total
}

