package grovego

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/grovego/backend"
	"github.com/hupe1980/grovego/bitorder"
	"github.com/hupe1980/grovego/blobstore"
	"github.com/hupe1980/grovego/block"
	"github.com/hupe1980/grovego/codec"
	"github.com/hupe1980/grovego/grover"
	"github.com/hupe1980/grovego/plan"
)

// Scanner executes a plan against a backend: one blocked Grover circuit
// per record, polled to completion, decoded through the wire mapping and
// scored against the record's hit set.
type Scanner struct {
	backend backend.Backend
	poller  *backend.Poller
	opts    options
}

// Outcome is one measured bitstring with its decoded indices.
type Outcome struct {
	Bitstring string  `json:"bitstring"`
	Prob      float64 `json:"prob"`
	Local     uint64  `json:"local"`
	Global    uint64  `json:"global"`
	Hit       bool    `json:"hit"`
}

// HitAnalysis summarizes one readout distribution against a hit set.
type HitAnalysis struct {
	// PAnyHit is the total probability mass on outcomes whose decoded
	// global index is in the hit set.
	PAnyHit float64 `json:"p_any_hit"`

	// Top is the most probable outcome; ties break toward the
	// lexicographically smallest bitstring.
	Top Outcome `json:"top"`

	// TopMissing names the wires of the top outcome whose bit defaulted
	// to 0 during decoding.
	TopMissing []int `json:"top_missing,omitempty"`

	// Outcomes holds every outcome sorted by descending probability.
	Outcomes []Outcome `json:"outcomes,omitempty"`
}

// AnalyzeHit decodes every bitstring of a readout distribution through the
// mapping, lifts the local index into the record's block and scores it
// against the global hit set. Wires without a mapped position decode as 0;
// the top outcome reports them in TopMissing.
func AnalyzeHit(probs map[string]float64, m bitorder.Mapping, blockID uint64, blockBits int, targets *roaring64.Bitmap) (HitAnalysis, error) {
	var a HitAnalysis
	var topMissing []int

	for bs, p := range probs {
		d := bitorder.Decode(bs, m, blockBits)
		global, err := block.Decode(blockID, d.Index, blockBits)
		if err != nil {
			return HitAnalysis{}, fmt.Errorf("decode outcome %q: %w", bs, err)
		}

		o := Outcome{
			Bitstring: bs,
			Prob:      p,
			Local:     d.Index,
			Global:    global,
			Hit:       targets != nil && targets.Contains(global),
		}
		if o.Hit {
			a.PAnyHit += p
		}
		a.Outcomes = append(a.Outcomes, o)

		if p > a.Top.Prob || (p == a.Top.Prob && (a.Top.Bitstring == "" || bs < a.Top.Bitstring)) {
			a.Top = o
			topMissing = d.Missing
		}
	}

	sort.Slice(a.Outcomes, func(i, j int) bool {
		if a.Outcomes[i].Prob != a.Outcomes[j].Prob {
			return a.Outcomes[i].Prob > a.Outcomes[j].Prob
		}
		return a.Outcomes[i].Bitstring < a.Outcomes[j].Bitstring
	})
	a.TopMissing = topMissing
	return a, nil
}

// RecordResult is the execution outcome of one plan record.
type RecordResult struct {
	K      int         `json:"k"`
	Status plan.Status `json:"status"`

	BlockID   *uint64 `json:"block_id,omitempty"`
	BlockBits int     `json:"block_bits,omitempty"`

	GateCount  int     `json:"gate_count,omitempty"`
	Shots      int     `json:"shots,omitempty"`
	ElapsedSec float64 `json:"elapsed_sec,omitempty"`

	Analysis *HitAnalysis `json:"analysis,omitempty"`

	ErrorMessage string `json:"error,omitempty"`
}

// Results is a completed scan over one plan.
type Results struct {
	Backend       string `json:"backend"`
	MeasuredWidth int    `json:"nbits_max"`
	Shots         int    `json:"shots"`
	Iterations    int    `json:"iterations"`

	// MappingPositions are the mapped character positions in wire order;
	// FallbackWires are the wires filled with the identity position.
	MappingPositions []int `json:"mapping_positions"`
	FallbackWires    []int `json:"fallback_wires,omitempty"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Records []RecordResult `json:"records"`
}

// Save persists the results as one blob.
func (r *Results) Save(ctx context.Context, store blobstore.BlobStore, name string, c codec.Codec) error {
	if c == nil {
		c = codec.Default
	}
	data, err := c.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	return store.Put(ctx, name, data)
}

// SaveResults persists scan results with the scanner's configured codec.
func (s *Scanner) SaveResults(ctx context.Context, store blobstore.BlobStore, name string, res *Results) error {
	return res.Save(ctx, store, name, s.opts.codec)
}

// LoadResults reads results persisted with the scanner's configured codec.
func (s *Scanner) LoadResults(ctx context.Context, store blobstore.BlobStore, name string) (*Results, error) {
	return LoadResults(ctx, store, name, s.opts.codec)
}

// LoadResults reads persisted scan results.
func LoadResults(ctx context.Context, store blobstore.BlobStore, name string, c codec.Codec) (*Results, error) {
	if c == nil {
		c = codec.Default
	}
	data, err := blobstore.ReadAll(ctx, store, name)
	if err != nil {
		return nil, err
	}
	var r Results
	if err := c.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	return &r, nil
}

// Run executes every record of the plan and returns the scored results.
// Records planned as MISSING_DATASET are passed through; records without a
// hit become SKIPPED_NO_TARGET. Execution failures mark their record FAILED
// without aborting the scan. Unmapped wires fall back to the identity
// position and are reported in FallbackWires.
func (s *Scanner) Run(ctx context.Context, p *plan.Plan, mapping bitorder.Mapping) (*Results, error) {
	width := p.MeasuredWidth
	if width == 0 {
		width = s.opts.measuredWidth
	}
	filledMapping, fallback := mapping.WithIdentityFallback(width)

	logger := s.opts.logger.WithBackend(s.backend.Name())

	res := &Results{
		Backend:          s.backend.Name(),
		MeasuredWidth:    width,
		Shots:            s.opts.shots,
		Iterations:       s.opts.iterations,
		MappingPositions: filledMapping.Positions(),
		FallbackWires:    fallback,
		StartedAt:        s.opts.clock.Now(),
		Records:          make([]RecordResult, len(p.Records)),
	}

	limit := s.opts.concurrency
	if limit < 1 {
		limit = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i := range p.Records {
		rec := &p.Records[i]
		out := &res.Records[i]

		g.Go(func() error {
			*out = s.runRecord(gctx, rec, filledMapping, logger)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	res.FinishedAt = s.opts.clock.Now()

	var failed, skipped int
	for _, rr := range res.Records {
		switch rr.Status {
		case plan.StatusFailed:
			failed++
		case plan.StatusMissingDataset, plan.StatusSkippedNoTarget:
			skipped++
		}
	}
	s.opts.metrics.RecordScan(len(res.Records), failed, res.FinishedAt.Sub(res.StartedAt))
	logger.LogScan(ctx, len(res.Records), failed, skipped)

	return res, nil
}

func (s *Scanner) runRecord(ctx context.Context, rec *plan.Record, m bitorder.Mapping, logger *Logger) RecordResult {
	out := RecordResult{
		K:         rec.K,
		Status:    plan.StatusOK,
		BlockID:   rec.BlockID,
		BlockBits: rec.BlockBits,
	}

	if rec.Status == plan.StatusMissingDataset {
		out.Status = plan.StatusMissingDataset
		return out
	}
	if len(rec.LocalTargets) == 0 || rec.BlockID == nil {
		out.Status = plan.StatusSkippedNoTarget
		return out
	}

	width := rec.MeasuredWidth
	if width == 0 {
		width = s.opts.measuredWidth
	}
	shots := rec.Shots
	if shots == 0 {
		shots = s.opts.shots
	}

	start := s.opts.clock.Now()
	prog, err := grover.Build(grover.Params{
		ActiveBits:    rec.BlockBits,
		MeasuredWidth: width,
		Targets:       rec.LocalTargets,
		Iterations:    s.opts.iterations,
	})
	gates := 0
	if prog != nil {
		gates = prog.GateCount()
	}
	s.opts.metrics.RecordAssemble(gates, s.opts.clock.Now().Sub(start), err)
	logger.LogAssemble(ctx, rec.K, gates, err)
	if err != nil {
		out.Status = plan.StatusFailed
		out.ErrorMessage = err.Error()
		return out
	}
	out.GateCount = gates
	out.Shots = shots

	execStart := s.opts.clock.Now()
	probs, err := s.poller.Probs(ctx, s.backend, prog, shots, s.opts.backendOptions)
	elapsed := s.opts.clock.Now().Sub(execStart)
	s.opts.metrics.RecordExecute(shots, elapsed, err)
	logger.LogExecute(ctx, rec.K, shots, elapsed, err)
	out.ElapsedSec = elapsed.Seconds()
	if err != nil {
		out.Status = plan.StatusFailed
		out.ErrorMessage = err.Error()
		return out
	}
	if len(probs) == 0 {
		out.Status = plan.StatusFailed
		out.ErrorMessage = "empty readout distribution"
		return out
	}

	analysis, err := AnalyzeHit(probs, m, *rec.BlockID, rec.BlockBits, rec.GlobalTargets())
	if err != nil {
		out.Status = plan.StatusFailed
		out.ErrorMessage = err.Error()
		return out
	}
	if s.opts.topK > 0 && len(analysis.Outcomes) > s.opts.topK {
		analysis.Outcomes = analysis.Outcomes[:s.opts.topK]
	}
	out.Analysis = &analysis
	return out
}
