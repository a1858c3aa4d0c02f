// Package calculator is the entry point to the calculation engine.
//
// It wires the letter tables, reduction, element, planetary, compatibility
// and balance packages behind one concurrency-safe value, memoizes profiles
// and records spans and metrics for every call. The underlying packages stay
// pure; everything here is bookkeeping around them.
package calculator

import (
	"context"
	"errors"
	"maps"
	"slices"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/zaibaitech/asrar-sub001/internal/abjad"
	"github.com/zaibaitech/asrar-sub001/internal/balance"
	"github.com/zaibaitech/asrar-sub001/internal/compat"
	"github.com/zaibaitech/asrar-sub001/internal/domain"
	"github.com/zaibaitech/asrar-sub001/internal/element"
	"github.com/zaibaitech/asrar-sub001/internal/infra/observability"
	"github.com/zaibaitech/asrar-sub001/internal/numerology"
	"github.com/zaibaitech/asrar-sub001/internal/planetary"
)

// Config controls calculator behavior.
type Config struct {
	DefaultVariant  string
	CacheSize       int // profiles kept in the LRU (default: 1024)
	PlanetaryMode   planetary.Mode
	PlanetaryOrigin planetary.Origin
	Cycle           element.Cycle
	Relations       *element.Relations
	CompatTable     compat.Table
	MaxConcurrent   int // batch workers (default: 4)
}

// DefaultConfig returns the classical tables and safe defaults.
func DefaultConfig() Config {
	return Config{
		DefaultVariant:  abjad.DefaultVariant,
		CacheSize:       1024,
		PlanetaryMode:   planetary.ModeFixed,
		PlanetaryOrigin: planetary.OriginMidnight,
		Cycle:           element.DefaultCycle,
		Relations:       element.DefaultRelations,
		CompatTable:     compat.DefaultTable,
		MaxConcurrent:   4,
	}
}

// Calculator serves every calculation. Safe for concurrent use.
type Calculator struct {
	cfg        Config
	registry   *abjad.Registry
	numerology *numerology.Calculator
	planets    *planetary.Engine
	scorer     *compat.Scorer
	balance    *balance.Calculator
	cache      *lru.Cache[string, domain.NumericProfile]
	tracer     *observability.Tracer
	logger     *zap.Logger
}

// New builds a calculator. The default variant must exist in reg; a nil
// registry means the built-in variants, a nil tracer disables tracing and a
// nil logger discards logs.
func New(cfg Config, reg *abjad.Registry, tracer *observability.Tracer, logger *zap.Logger) (*Calculator, error) {
	if reg == nil {
		reg = abjad.DefaultRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultConfig().CacheSize
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = DefaultConfig().MaxConcurrent
	}
	if cfg.Relations == nil {
		cfg.Relations = element.DefaultRelations
	}
	if cfg.Cycle.Version() == "" {
		cfg.Cycle = element.DefaultCycle
	}
	if cfg.CompatTable.Percentages == nil {
		cfg.CompatTable = compat.DefaultTable
	}
	if cfg.DefaultVariant == "" {
		cfg.DefaultVariant = abjad.DefaultVariant
	}
	if cfg.PlanetaryMode == "" {
		cfg.PlanetaryMode = planetary.ModeFixed
	}
	if cfg.PlanetaryOrigin == "" {
		cfg.PlanetaryOrigin = planetary.OriginMidnight
	}

	if _, err := reg.Lookup(cfg.DefaultVariant); err != nil {
		return nil, err
	}
	planets, err := planetary.NewEngine(cfg.PlanetaryMode, cfg.PlanetaryOrigin)
	if err != nil {
		return nil, err
	}
	scorer, err := compat.NewScorer(cfg.CompatTable, cfg.Relations, cfg.Cycle)
	if err != nil {
		return nil, err
	}
	cache, err := lru.New[string, domain.NumericProfile](cfg.CacheSize)
	if err != nil {
		return nil, err
	}

	return &Calculator{
		cfg:        cfg,
		registry:   reg,
		numerology: numerology.NewCalculator(cfg.Cycle),
		planets:    planets,
		scorer:     scorer,
		balance:    balance.NewCalculator(cfg.Relations),
		cache:      cache,
		tracer:     tracer,
		logger:     logger,
	}, nil
}

// Config returns the effective configuration.
func (c *Calculator) Config() Config { return c.cfg }

// Tracer returns the tracer, possibly nil.
func (c *Calculator) Tracer() *observability.Tracer { return c.tracer }

// ─── Variants ───────────────────────────────────────────────────────────────

// VariantInfo describes one selectable letter-value table.
type VariantInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Letters     int    `json:"letters"`
	Default     bool   `json:"default"`
}

// Variants lists the registered tables.
func (c *Calculator) Variants() []VariantInfo {
	names := c.registry.Names()
	out := make([]VariantInfo, 0, len(names))
	for _, name := range names {
		t := c.registry.MustLookup(name)
		out = append(out, VariantInfo{
			Name:        t.Name(),
			Version:     t.Version(),
			Description: t.Description(),
			Letters:     t.Len(),
			Default:     name == c.cfg.DefaultVariant,
		})
	}
	return out
}

func (c *Calculator) table(variant string) (*abjad.Table, error) {
	if variant == "" {
		variant = c.cfg.DefaultVariant
	}
	return c.registry.Lookup(variant)
}

// ─── Profiles ───────────────────────────────────────────────────────────────

// ComputeNumericProfile profiles text under variant ("" = default variant).
// Results are memoized per (variant, text).
func (c *Calculator) ComputeNumericProfile(ctx context.Context, text, variant string) (domain.NumericProfile, error) {
	var p domain.NumericProfile
	err := c.observe(ctx, "profile", map[string]string{"variant": variant}, func(ctx context.Context) error {
		tbl, err := c.table(variant)
		if err != nil {
			return err
		}
		key := tbl.Name() + "\x00" + text
		if cached, ok := c.cache.Get(key); ok {
			observability.CacheLookups.WithLabelValues("hit").Inc()
			p = cloneProfile(cached)
			return nil
		}
		observability.CacheLookups.WithLabelValues("miss").Inc()

		p, err = c.numerology.Profile(text, tbl)
		if err != nil {
			return err
		}
		c.cache.Add(key, cloneProfile(p))
		return nil
	})
	return p, err
}

// CombinedProfile profiles a name together with the mother's name.
func (c *Calculator) CombinedProfile(ctx context.Context, name, mother, variant string) (domain.NumericProfile, error) {
	var p domain.NumericProfile
	err := c.observe(ctx, "combined_profile", map[string]string{"variant": variant}, func(ctx context.Context) error {
		tbl, err := c.table(variant)
		if err != nil {
			return err
		}
		p, err = c.numerology.CombinedProfile(name, mother, tbl)
		return err
	})
	return p, err
}

// ClassifyElement maps a total onto the configured element cycle.
func (c *Calculator) ClassifyElement(total int) domain.Element {
	return c.cfg.Cycle.Classify(total)
}

// ─── Planetary Hours ────────────────────────────────────────────────────────

// RulingPlanet returns the ruler of (weekday, hour).
func (c *Calculator) RulingPlanet(ctx context.Context, weekday, hour int) (domain.Planet, error) {
	hr, err := c.PlanetaryHour(ctx, weekday, hour)
	return hr.Ruler, err
}

// PlanetaryHour returns the full record of (weekday, hour).
func (c *Calculator) PlanetaryHour(ctx context.Context, weekday, hour int) (domain.PlanetaryHour, error) {
	var hr domain.PlanetaryHour
	err := c.observe(ctx, "planetary_hour", nil, func(context.Context) error {
		var err error
		hr, err = c.planets.Hour(weekday, hour)
		return err
	})
	return hr, err
}

// PlanetaryHourAt resolves the hour containing t under the configured mode.
func (c *Calculator) PlanetaryHourAt(ctx context.Context, t time.Time, day *planetary.SolarDay) (domain.PlanetaryHour, error) {
	var hr domain.PlanetaryHour
	err := c.observe(ctx, "planetary_hour_at", map[string]string{"mode": string(c.planets.Mode())}, func(context.Context) error {
		var err error
		hr, err = c.planets.At(t, day)
		return err
	})
	return hr, err
}

// PlanetaryDay returns all 24 hours of weekday.
func (c *Calculator) PlanetaryDay(ctx context.Context, weekday int) ([]domain.PlanetaryHour, error) {
	var hours []domain.PlanetaryHour
	err := c.observe(ctx, "planetary_day", nil, func(context.Context) error {
		var err error
		hours, err = c.planets.DayHours(weekday)
		return err
	})
	return hours, err
}

// ─── Compatibility & Balance ────────────────────────────────────────────────

// ScoreCompatibility scores two profiles with optional mothers.
func (c *Calculator) ScoreCompatibility(ctx context.Context, a, b domain.NumericProfile, motherA, motherB *domain.NumericProfile) (domain.CompatibilityResult, error) {
	var res domain.CompatibilityResult
	err := c.observe(ctx, "compatibility", nil, func(context.Context) error {
		var err error
		res, err = c.scorer.Score(a, b, motherA, motherB)
		if err == nil {
			observability.CompatibilityScores.Observe(float64(res.OverallScore))
		}
		return err
	})
	return res, err
}

// ComputeBalance scores a user element against a context element.
func (c *Calculator) ComputeBalance(ctx context.Context, user, against domain.Element) (domain.BalanceState, error) {
	var st domain.BalanceState
	err := c.observe(ctx, "balance", nil, func(context.Context) error {
		var err error
		st, err = c.balance.Compute(user, against)
		if err == nil {
			observability.BalanceSeverities.WithLabelValues(string(st.Severity)).Inc()
		}
		return err
	})
	return st, err
}

// ─── Instrumentation ────────────────────────────────────────────────────────

// observe runs fn inside a span and records its outcome.
func (c *Calculator) observe(ctx context.Context, op string, attrs map[string]string, fn func(context.Context) error) error {
	ctx, span := c.tracer.StartSpan(ctx, op, attrs)
	start := time.Now()
	err := fn(ctx)
	observability.CalculationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	c.tracer.EndSpan(span, err)

	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrConfiguration):
		outcome = "error"
		c.logger.Error("calculation misconfigured",
			zap.String("operation", op), zap.String("trace_id", span.TraceID), zap.Error(err))
	default:
		outcome = "invalid"
		observability.InvalidInputs.WithLabelValues(errorKind(err)).Inc()
		c.logger.Debug("calculation rejected input",
			zap.String("operation", op), zap.String("trace_id", span.TraceID), zap.Error(err))
	}
	observability.Calculations.WithLabelValues(op, outcome).Inc()
	return err
}

// errorKind is a low-cardinality label for a rejected input.
func errorKind(err error) string {
	var ie *domain.InvalidInputError
	if errors.As(err, &ie) {
		return ie.Kind
	}
	var re *domain.InvalidRangeError
	if errors.As(err, &re) {
		return "out of range: " + re.Field
	}
	return "invalid"
}

// cloneProfile deep-copies the slices and maps of p so cached values are
// never shared with callers.
func cloneProfile(p domain.NumericProfile) domain.NumericProfile {
	p.Reduction = cloneReduction(p.Reduction)
	p.Numbers.Destiny = cloneReduction(p.Numbers.Destiny)
	p.Numbers.SoulUrge = cloneReduction(p.Numbers.SoulUrge)
	p.Numbers.Personality = cloneReduction(p.Numbers.Personality)
	if p.Numbers.LifePath != nil {
		lp := cloneReduction(*p.Numbers.LifePath)
		p.Numbers.LifePath = &lp
	}
	p.LetterElements = maps.Clone(p.LetterElements)
	return p
}

func cloneReduction(r domain.Reduction) domain.Reduction {
	r.Chain = slices.Clone(r.Chain)
	r.KarmicDebt = slices.Clone(r.KarmicDebt)
	return r
}
