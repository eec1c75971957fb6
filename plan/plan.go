// Package plan builds and persists experiment plans: one record per
// dataset, carrying the full hit set, the representative target and its
// block mapping, ready to be executed as blocked Grover searches.
package plan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/grovego/block"
	"github.com/hupe1980/grovego/blobstore"
	"github.com/hupe1980/grovego/codec"
	"github.com/hupe1980/grovego/dataset"
)

// Status classifies a record over its lifecycle.
type Status string

const (
	// StatusOK marks a record that executed and returned measurement data.
	StatusOK Status = "OK"
	// StatusMissingDataset marks a record whose dataset file was absent at
	// plan time.
	StatusMissingDataset Status = "MISSING_DATASET"
	// StatusSkippedNoTarget marks a record with no hit in the dataset;
	// the oracle would be undefined for the equality hit test.
	StatusSkippedNoTarget Status = "SKIPPED_NO_TARGET"
	// StatusFailed marks a record whose execution returned no measurement
	// data.
	StatusFailed Status = "FAILED"
)

// Record is one dataset's entry in the plan.
type Record struct {
	K           int    `json:"k"`
	Status      Status `json:"status,omitempty"`
	DatasetPath string `json:"dataset_path"`

	// NFile is the row count of the dataset file; NFormula is the nominal
	// 2^k scale.
	NFile    int    `json:"n_file,omitempty"`
	NFormula uint64 `json:"n_formula,omitempty"`

	TargetValue int64 `json:"target_value"`

	// Targets is the full global hit set, kept for audit and hit-mass
	// statistics. M is its cardinality.
	Targets []uint64 `json:"targets"`
	M       int      `json:"m"`

	// Block mapping of the representative target. BlockID and RepTarget
	// are nil when the dataset has no hit.
	BlockBits    int      `json:"block_bits"`
	BlockSize    uint64   `json:"block_size"`
	BlockID      *uint64  `json:"block_id"`
	LocalTargets []uint64 `json:"local_targets"`
	RepTarget    *uint64  `json:"rep_target"`

	MeasuredWidth int `json:"nbits_max"`
	Shots         int `json:"shots"`
}

// GlobalTargets returns the hit set as a bitmap.
func (r *Record) GlobalTargets() *roaring64.Bitmap {
	bm := roaring64.New()
	for _, t := range r.Targets {
		bm.Add(t)
	}
	return bm
}

// Plan is a batch of records sharing block and measurement settings.
type Plan struct {
	DatasetPrefix string `json:"dataset_prefix"`
	KMin          int    `json:"k_min"`
	KMax          int    `json:"k_max"`
	TargetValue   int64  `json:"target_value"`
	MeasuredWidth int    `json:"nbits_max"`
	Shots         int    `json:"shots"`

	BlockBits int    `json:"block_bits"`
	BlockSize uint64 `json:"block_size"`

	Records []Record `json:"records"`
}

// Config configures plan construction.
type Config struct {
	// Store holds the dataset CSVs.
	Store blobstore.BlobStore

	// DatasetPrefix is the blob name prefix of the dataset files.
	DatasetPrefix string

	// DatasetPattern names one dataset file per scale k.
	// Default "low_selectivity_data_%d.csv".
	DatasetPattern string

	// KMin and KMax bound the dataset scales, inclusive.
	KMin int
	KMax int

	// TargetValue is the value whose records the search marks.
	TargetValue int64

	// MeasuredWidth is the fixed measured prefix width. Default 10.
	MeasuredWidth int

	// Shots per executed circuit. Default 2000.
	Shots int

	// BlockBits is the depth-safe block width. Default 4.
	BlockBits int

	// Logger records per-dataset outcomes. Nil discards.
	Logger *slog.Logger
}

// DatasetName returns the blob name of the dataset for scale k.
func (c Config) DatasetName(k int) string {
	pattern := c.DatasetPattern
	if pattern == "" {
		pattern = "low_selectivity_data_%d.csv"
	}
	return path.Join(c.DatasetPrefix, fmt.Sprintf(pattern, k))
}

// Build reads every dataset in [KMin, KMax] and produces one record each.
// Missing datasets yield StatusMissingDataset records rather than errors.
// The representative target is the first hit; low-selectivity datasets
// typically have exactly one.
func Build(ctx context.Context, cfg Config) (*Plan, error) {
	if cfg.MeasuredWidth == 0 {
		cfg.MeasuredWidth = 10
	}
	if cfg.Shots == 0 {
		cfg.Shots = 2000
	}
	if cfg.BlockBits == 0 {
		cfg.BlockBits = 4
	}

	blockSize, err := block.Size(cfg.BlockBits)
	if err != nil {
		return nil, err
	}

	p := &Plan{
		DatasetPrefix: cfg.DatasetPrefix,
		KMin:          cfg.KMin,
		KMax:          cfg.KMax,
		TargetValue:   cfg.TargetValue,
		MeasuredWidth: cfg.MeasuredWidth,
		Shots:         cfg.Shots,
		BlockBits:     cfg.BlockBits,
		BlockSize:     blockSize,
	}

	for k := cfg.KMin; k <= cfg.KMax; k++ {
		name := cfg.DatasetName(k)

		values, err := dataset.ReadValuesBlob(ctx, cfg.Store, name)
		if errors.Is(err, blobstore.ErrNotFound) {
			if cfg.Logger != nil {
				cfg.Logger.WarnContext(ctx, "dataset missing", "k", k, "name", name)
			}
			p.Records = append(p.Records, Record{
				K:           k,
				Status:      StatusMissingDataset,
				DatasetPath: name,
			})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("dataset %s: %w", name, err)
		}

		hits := dataset.FindTargets(values, cfg.TargetValue)

		rec := Record{
			K:             k,
			DatasetPath:   name,
			NFile:         len(values),
			NFormula:      1 << k,
			TargetValue:   cfg.TargetValue,
			M:             int(hits.GetCardinality()),
			BlockBits:     cfg.BlockBits,
			BlockSize:     blockSize,
			MeasuredWidth: cfg.MeasuredWidth,
			Shots:         cfg.Shots,
		}

		it := hits.Iterator()
		for it.HasNext() {
			rec.Targets = append(rec.Targets, it.Next())
		}

		if len(rec.Targets) > 0 {
			rep := rec.Targets[0]
			blockID, local, err := block.Encode(rep, cfg.BlockBits)
			if err != nil {
				return nil, err
			}
			rec.RepTarget = &rep
			rec.BlockID = &blockID
			rec.LocalTargets = []uint64{local}
		}

		if cfg.Logger != nil {
			cfg.Logger.DebugContext(ctx, "dataset planned", "k", k, "hits", rec.M)
		}
		p.Records = append(p.Records, rec)
	}
	return p, nil
}

// Save persists the plan as one blob.
func (p *Plan) Save(ctx context.Context, store blobstore.BlobStore, name string, c codec.Codec) error {
	if c == nil {
		c = codec.Default
	}
	data, err := c.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	return store.Put(ctx, name, data)
}

// Load reads a persisted plan.
func Load(ctx context.Context, store blobstore.BlobStore, name string, c codec.Codec) (*Plan, error) {
	if c == nil {
		c = codec.Default
	}
	data, err := blobstore.ReadAll(ctx, store, name)
	if err != nil {
		return nil, err
	}
	var p Plan
	if err := c.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	return &p, nil
}
