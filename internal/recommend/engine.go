// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package recommend

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"

	"github.com/tomtom215/outfitter/internal/cache"
	"github.com/tomtom215/outfitter/internal/catalog"
	"github.com/tomtom215/outfitter/internal/copurchase"
	"github.com/tomtom215/outfitter/internal/recommend/reranking"
	"github.com/tomtom215/outfitter/internal/recommend/scoring"
)

// Outcome labels reported to the Observer.
const (
	OutcomeOK       = "ok"
	OutcomeEmpty    = "empty"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Dataset is the immutable data an engine serves from.
type Dataset struct {
	Catalog *catalog.Catalog
	Index   *copurchase.Index

	// Source describes where the data came from, for logging.
	Source string

	// LoadedAt is when the data was loaded.
	LoadedAt time.Time
}

// Observer receives engine events. The metrics package implements it.
type Observer interface {
	ObserveRecommendation(outcome string, d time.Duration)
	ObserveCandidates(provenance string, n int)
	ObserveCache(hit bool)
}

type nopObserver struct{}

func (nopObserver) ObserveRecommendation(string, time.Duration) {}
func (nopObserver) ObserveCandidates(string, int)               {}
func (nopObserver) ObserveCache(bool)                           {}

// state is everything derived from one Dataset.
type state struct {
	// generation increments with every Load and keys the response cache.
	generation uint64
	data       Dataset
	aggregator *Aggregator
	sampler    *Sampler
}

// Engine composes outfit recommendations. Datasets are swapped atomically,
// so a request always sees one consistent catalog and index. It is safe for
// concurrent use.
type Engine struct {
	config     *Config
	logger     zerolog.Logger
	scorer     *scoring.Scorer
	crossCheck reranking.CrossCheck
	observer   Observer

	state       atomic.Pointer[state]
	generations atomic.Uint64

	// cache is nil when response caching is disabled.
	cache *expirable.LRU[string, *Response]

	requestCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	errorCount   atomic.Int64
}

// NewEngine creates a new outfit engine. A nil config selects
// DefaultConfig. The engine is not ready until Load is called.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg = cfg.Clone()

	model, err := scoring.ModelByName(cfg.Scoring.ColorModel)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config:     cfg,
		logger:     logger.With().Str("component", "recommend").Logger(),
		scorer:     scoring.New(model, cfg.Scoring.StyleWeight),
		crossCheck: reranking.NewCrossCheck(cfg.CrossCheck.Peers, cfg.CrossCheck.OwnWeight),
		observer:   nopObserver{},
	}
	if cfg.Cache.Enabled {
		e.cache = expirable.NewLRU[string, *Response](cfg.Cache.MaxEntries, nil, cfg.Cache.TTL)
	}
	return e, nil
}

// SetObserver registers the receiver of engine events. Call it before
// serving requests.
func (e *Engine) SetObserver(o Observer) {
	if o == nil {
		o = nopObserver{}
	}
	e.observer = o
}

// Load installs a dataset, replacing the previous one, and clears the
// response cache.
//
//nolint:gocritic // hugeParam: ds passed by value for immutability
func (e *Engine) Load(ds Dataset) error {
	if ds.Catalog == nil || ds.Index == nil {
		return fmt.Errorf("load dataset: %w", catalog.ErrDataUnavailable)
	}
	if ds.LoadedAt.IsZero() {
		ds.LoadedAt = time.Now()
	}

	agg, err := NewAggregator(ds.Catalog, ds.Index, e.scorer, e.config.Similar)
	if err != nil {
		return err
	}
	e.state.Store(&state{
		generation: e.generations.Add(1),
		data:       ds,
		aggregator: agg,
		sampler:    NewSampler(ds.Catalog, e.scorer, e.config.Fallback, e.config.Pool, e.config.SameDepartment),
	})
	if e.cache != nil {
		e.cache.Purge()
	}

	e.logger.Info().
		Str("source", ds.Source).
		Int("articles", ds.Catalog.Len()).
		Int("pairs", ds.Index.Records()).
		Msg("dataset loaded")
	return nil
}

// Ready reports whether a dataset is loaded.
func (e *Engine) Ready() bool {
	return e.state.Load() != nil
}

// Dataset returns the current dataset.
func (e *Engine) Dataset() (Dataset, error) {
	st := e.state.Load()
	if st == nil {
		return Dataset{}, ErrNotReady
	}
	return st.data, nil
}

// Aggregator returns the candidate aggregator of the current dataset.
func (e *Engine) Aggregator() (*Aggregator, error) {
	st := e.state.Load()
	if st == nil {
		return nil, ErrNotReady
	}
	return st.aggregator, nil
}

// Scorer returns the engine's compatibility scorer.
func (e *Engine) Scorer() *scoring.Scorer {
	return e.scorer
}

// Recommend builds an outfit around the base article of req. It fails with
// ErrBaseNotFound for an unknown base and ErrNotReady before Load. A
// request that fills no category is a valid response with Empty set.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	resp, err := e.recommend(ctx, req, start)
	switch {
	case err == nil && resp.Empty:
		e.observer.ObserveRecommendation(OutcomeEmpty, time.Since(start))
	case err == nil:
		e.observer.ObserveRecommendation(OutcomeOK, time.Since(start))
	case errors.Is(err, catalog.ErrNotFound):
		e.observer.ObserveRecommendation(OutcomeNotFound, time.Since(start))
	default:
		e.errorCount.Add(1)
		e.observer.ObserveRecommendation(OutcomeError, time.Since(start))
	}
	return resp, err
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) recommend(ctx context.Context, req Request, start time.Time) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	st := e.state.Load()
	if st == nil {
		return nil, ErrNotReady
	}

	req, err := e.prepareRequest(req)
	if err != nil {
		return nil, err
	}
	logger := e.createRequestLogger(req)

	base, err := e.resolveBase(st, req)
	if err != nil {
		logger.Debug().Err(err).Msg("base article not resolved")
		return nil, err
	}

	key := e.cacheKey(st.generation, req)
	if cached := e.tryGetCachedResponse(key, req, start, logger); cached != nil {
		return cached, nil
	}

	targets := e.targets(base, req.Targets)
	categories := e.compose(st, base, targets, req)

	resp := &Response{
		Base:       base,
		Categories: categories,
		Empty:      len(categories) == 0,
		Metadata:   e.buildResponseMetadata(req, targets, categories, start),
	}
	for prov, n := range resp.Metadata.Provenance {
		e.observer.ObserveCandidates(string(prov), n)
	}

	e.cacheResponse(key, resp)

	logger.Debug().
		Int("categories", len(categories)).
		Bool("empty", resp.Empty).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("outfit recommended")

	return resp, nil
}

// prepareRequest fills defaults and normalizes list fields.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) (Request, error) {
	if req.RequestID == "" {
		req.RequestID = generateRequestID()
	}

	if req.PerCategory <= 0 {
		req.PerCategory = e.config.Limits.DefaultPerCategory
	}
	if req.PerCategory > e.config.Limits.MaxPerCategory {
		req.PerCategory = e.config.Limits.MaxPerCategory
	}

	if req.Seed == 0 {
		req.Seed = e.config.Seed
	}

	if len(req.Exclude) > e.config.Limits.MaxExclude {
		return req, fmt.Errorf("%w: %d excluded articles exceeds limit %d",
			ErrInvalidRequest, len(req.Exclude), e.config.Limits.MaxExclude)
	}
	req.Exclude = slices.Clone(req.Exclude)
	slices.Sort(req.Exclude)
	req.Exclude = slices.Compact(req.Exclude)

	targets := make([]catalog.Macro, 0, len(req.Targets))
	for _, m := range req.Targets {
		if parsed, ok := catalog.ParseMacro(string(m)); ok {
			targets = append(targets, parsed)
		}
	}
	slices.Sort(targets)
	req.Targets = slices.Compact(targets)

	if req.Upload != nil && !req.Upload.Macro.Defined() {
		return req, fmt.Errorf("%w: upload macro-category %q", ErrInvalidRequest, req.Upload.Macro)
	}
	return req, nil
}

// createRequestLogger creates a logger with request context.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Int64("base_id", req.BaseID).
		Bool("upload", req.Upload != nil).
		Int("per_category", req.PerCategory).
		Logger()
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) resolveBase(st *state, req Request) (*catalog.Article, error) {
	if req.Upload != nil {
		a := req.Upload.Article()
		return &a, nil
	}
	base, err := st.data.Catalog.Lookup(req.BaseID)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrBaseNotFound, req.BaseID)
	}
	return base, nil
}

// targets returns the categories to fill, in display order: every category
// except the base's own, without OUTERWEAR for an outerwear-like base. A
// requested subset applies when it keeps at least one of them.
func (e *Engine) targets(base *catalog.Article, requested []catalog.Macro) []catalog.Macro {
	defaults := make([]catalog.Macro, 0, len(catalog.DisplayOrder))
	for _, m := range catalog.DisplayOrder {
		if m == base.Macro {
			continue
		}
		if m == catalog.MacroOuterwear && base.OuterwearLike {
			continue
		}
		defaults = append(defaults, m)
	}
	if len(requested) == 0 {
		return defaults
	}

	chosen := make([]catalog.Macro, 0, len(requested))
	for _, m := range defaults {
		if slices.Contains(requested, m) {
			chosen = append(chosen, m)
		}
	}
	if len(chosen) == 0 {
		return defaults
	}
	return chosen
}

// compose runs aggregation, thresholds, fallback, and the cross-check for
// every target and returns the non-empty categories in target order.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) compose(st *state, base *catalog.Article, targets []catalog.Macro, req Request) []Category {
	exclude := make(map[int64]struct{}, len(req.Exclude)+1)
	for _, id := range req.Exclude {
		exclude[id] = struct{}{}
	}
	exclude[base.ID] = struct{}{}

	accept := e.acceptFor(base)
	gathered := st.aggregator.gather(base, targets, gatherOptions{
		mergeSimilar: req.MergeSimilar,
		exclude:      exclude,
	})

	macros := make([]catalog.Macro, 0, len(targets))
	pools := make([][]Candidate, 0, len(targets))
	for _, m := range targets {
		pool := e.scorePool(base, gathered[m], accept, req.Weather)
		if len(pool) < e.config.Pool.Size {
			pool = st.sampler.TopUp(pool, m, base, e.config.Pool.Size-len(pool), Draw{
				Seed:    req.Seed,
				Weather: req.Weather,
				Exclude: exclude,
				Accept:  accept,
			})
		}
		if len(pool) > e.config.Pool.Size {
			pool = pool[:e.config.Pool.Size]
		}
		if len(pool) == 0 {
			continue
		}
		macros = append(macros, m)
		pools = append(pools, pool)
	}

	if e.config.CrossCheck.Enabled {
		pools = e.applyCrossCheck(pools)
	}

	categories := make([]Category, 0, len(pools))
	for i, pool := range pools {
		if len(pool) > req.PerCategory {
			pool = pool[:req.PerCategory]
		}
		categories = append(categories, Category{Macro: macros[i], Items: pool})
	}
	return categories
}

// acceptFor returns the candidate filter implied by the base article, or nil.
func (e *Engine) acceptFor(base *catalog.Article) func(*catalog.Article) bool {
	dept := ""
	if e.config.SameDepartment {
		dept = base.IndexName
	}
	if dept == "" && !base.OuterwearLike {
		return nil
	}
	return func(a *catalog.Article) bool {
		if dept != "" && !strings.EqualFold(a.IndexName, dept) {
			return false
		}
		if base.OuterwearLike && a.OuterwearLike {
			return false
		}
		return true
	}
}

// scorePool scores co-purchase candidates against base, ranks them, and
// drops those under the pool thresholds.
func (e *Engine) scorePool(base *catalog.Article, cands []Candidate, accept func(*catalog.Article) bool, weather scoring.Condition) []Candidate {
	pool := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if accept != nil && !accept(c.Article) {
			continue
		}
		c.Score = e.scorer.ScoreInWeather(base, c.Article, weather)
		c.Display = c.Score.Hybrid
		if c.Score.Style < e.config.Pool.MinStyle ||
			c.Score.Color < e.config.Pool.MinColor ||
			c.Score.Hybrid < e.config.Pool.MinScore {
			continue
		}
		pool = append(pool, c)
	}
	rankCandidates(pool)
	return pool
}

func (e *Engine) applyCrossCheck(pools [][]Candidate) [][]Candidate {
	scored := reranking.Rerank(e.crossCheck, pools,
		func(c Candidate) float64 { return c.Score.Hybrid },
		func(item, peer Candidate) float64 { return e.scorer.Hybrid(item.Article, peer.Article) },
		func(a, b Candidate) int {
			switch {
			case a.Count > b.Count:
				return -1
			case a.Count < b.Count:
				return 1
			}
			return 0
		},
	)

	out := make([][]Candidate, len(scored))
	for i, pool := range scored {
		out[i] = make([]Candidate, len(pool))
		for j, s := range pool {
			c := s.Item
			c.Display = s.Display
			out[i][j] = c
		}
	}
	return out
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) buildResponseMetadata(req Request, targets []catalog.Macro, categories []Category, start time.Time) ResponseMetadata {
	prov := make(map[Provenance]int, 3)
	for _, c := range categories {
		for i := range c.Items {
			prov[c.Items[i].Provenance]++
		}
	}
	return ResponseMetadata{
		RequestID:   req.RequestID,
		Targets:     targets,
		PerCategory: req.PerCategory,
		Seed:        req.Seed,
		ColorModel:  e.scorer.ColorModel().Name(),
		Weather:     req.Weather,
		Provenance:  prov,
		LatencyMS:   time.Since(start).Milliseconds(),
		Timestamp:   time.Now(),
	}
}

// cacheKey hashes every request field that affects the result, plus the
// dataset generation so a response built before a reload can never be
// served after it.
//
//nolint:gocritic // hugeParam: req passed by value for simplicity
func (e *Engine) cacheKey(generation uint64, req Request) string {
	return cache.GenerateKey("outfit", struct {
		Generation  uint64            `json:"g"`
		BaseID      int64             `json:"b"`
		Upload      *Upload           `json:"u"`
		Targets     []catalog.Macro   `json:"t"`
		Exclude     []int64           `json:"x"`
		PerCategory int               `json:"k"`
		Seed        int64             `json:"s"`
		Weather     scoring.Condition `json:"w"`
		Merge       bool              `json:"m"`
	}{generation, req.BaseID, req.Upload, req.Targets, req.Exclude, req.PerCategory, req.Seed, req.Weather, req.MergeSimilar})
}

// tryGetCachedResponse returns a copy of a cached response, or nil.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) tryGetCachedResponse(key string, req Request, start time.Time, logger zerolog.Logger) *Response {
	if e.cache == nil {
		return nil
	}
	cached, ok := e.cache.Get(key)
	e.observer.ObserveCache(ok)
	if !ok {
		e.cacheMisses.Add(1)
		return nil
	}
	e.cacheHits.Add(1)

	resp := copyCachedResponse(cached)
	resp.Metadata.RequestID = req.RequestID
	resp.Metadata.CacheHit = true
	resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
	logger.Debug().Msg("cache hit")
	return resp
}

// copyCachedResponse copies everything a caller could modify.
func copyCachedResponse(resp *Response) *Response {
	out := *resp
	out.Categories = make([]Category, len(resp.Categories))
	for i, c := range resp.Categories {
		out.Categories[i] = Category{Macro: c.Macro, Items: slices.Clone(c.Items)}
	}
	out.Metadata.Targets = slices.Clone(resp.Metadata.Targets)
	out.Metadata.Provenance = make(map[Provenance]int, len(resp.Metadata.Provenance))
	for k, v := range resp.Metadata.Provenance {
		out.Metadata.Provenance[k] = v
	}
	return &out
}

func (e *Engine) cacheResponse(key string, resp *Response) {
	if e.cache == nil {
		return
	}
	e.cache.Add(key, copyCachedResponse(resp))
}

// GetMetrics returns the current engine counters.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		RequestCount: e.requestCount.Load(),
		CacheHits:    e.cacheHits.Load(),
		CacheMisses:  e.cacheMisses.Load(),
		ErrorCount:   e.errorCount.Load(),
	}
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

// generateRequestID generates a unique request ID for tracing.
func generateRequestID() string {
	return "rec-" + uuid.NewString()
}
