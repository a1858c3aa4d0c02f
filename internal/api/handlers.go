package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/zaibaitech/asrar-sub001/internal/app/calculator"
	"github.com/zaibaitech/asrar-sub001/internal/domain"
	"github.com/zaibaitech/asrar-sub001/internal/element"
	"github.com/zaibaitech/asrar-sub001/internal/numerology"
	"github.com/zaibaitech/asrar-sub001/internal/planetary"
)

// ─── Asrar API ──────────────────────────────────────────────────────────────
//
// GET  /v1/variants              — registered letter tables
// POST /v1/profile               — numeric profile of a name
// POST /v1/profile/batch         — profiles of many names
// GET  /v1/element?total=        — element of a raw total
// GET  /v1/planetary-hour        — ruler of (weekday, hour)
// POST /v1/planetary-hour/at     — planetary hour of an instant
// GET  /v1/planetary-day         — the 24 hours of a weekday
// POST /v1/compatibility         — four-layer compatibility of two names
// GET  /v1/balance               — elemental balance against a context
// POST /v1/reading               — profile, hour and balance in one record
// GET  /api/debug/spans          — recent trace spans

const maxBatch = 1000

// handleVariants lists letter tables.
// GET /v1/variants
func (s *Server) handleVariants(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"variants": s.calc.Variants(),
	})
}

type profileRequest struct {
	Text    string `json:"text"`
	Variant string `json:"variant,omitempty"`
	Mother  string `json:"mother,omitempty"`
	Birth   string `json:"birth,omitempty"` // YYYY-MM-DD
}

// handleProfile computes the numeric profile of a name.
// POST /v1/profile
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	birth, ok := parseBirth(w, req.Birth)
	if !ok {
		return
	}

	ctx := r.Context()
	prof, err := s.calc.ComputeNumericProfile(ctx, req.Text, req.Variant)
	if err != nil {
		s.writeCalcError(w, r, err)
		return
	}
	if birth != nil {
		if prof, err = numerology.WithLifePath(prof, *birth); err != nil {
			s.writeCalcError(w, r, err)
			return
		}
	}

	resp := map[string]interface{}{"profile": prof}
	if req.Mother != "" {
		comb, err := s.calc.CombinedProfile(ctx, req.Text, req.Mother, req.Variant)
		if err != nil {
			s.writeCalcError(w, r, err)
			return
		}
		resp["combined"] = comb
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleProfileBatch profiles many names. Per-entry failures are reported
// inline; the request itself succeeds.
// POST /v1/profile/batch
func (s *Server) handleProfileBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Texts   []string `json:"texts"`
		Variant string   `json:"variant,omitempty"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Texts) == 0 {
		writeError(w, http.StatusBadRequest, "texts must not be empty")
		return
	}
	if len(req.Texts) > maxBatch {
		writeError(w, http.StatusBadRequest, "too many texts: limit is "+strconv.Itoa(maxBatch))
		return
	}

	results := s.calc.ProfileBatch(r.Context(), req.Texts, req.Variant)
	failed := 0
	for _, res := range results {
		if res.Error != "" {
			failed++
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"results": results,
		"failed":  failed,
	})
}

// handleElement classifies a raw total.
// GET /v1/element?total=N
func (s *Server) handleElement(w http.ResponseWriter, r *http.Request) {
	total, ok := queryInt(w, r, "total")
	if !ok {
		return
	}
	e := s.calc.ClassifyElement(total)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total":     total,
		"remainder": element.Remainder(total),
		"element":   e,
		"quality":   element.QualityOf(e),
		"cycle":     s.calc.Config().Cycle.Version(),
	})
}

// handlePlanetaryHour returns the ruler of one hour.
// GET /v1/planetary-hour?weekday=0&hour=3
func (s *Server) handlePlanetaryHour(w http.ResponseWriter, r *http.Request) {
	weekday, ok := queryInt(w, r, "weekday")
	if !ok {
		return
	}
	hour, ok := queryInt(w, r, "hour")
	if !ok {
		return
	}
	hr, err := s.calc.PlanetaryHour(r.Context(), weekday, hour)
	if err != nil {
		s.writeCalcError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hourResponse(hr))
}

type hourAtRequest struct {
	At       time.Time           `json:"at"`
	SolarDay *planetary.SolarDay `json:"solar_day,omitempty"`
}

// handlePlanetaryHourAt resolves the planetary hour of an instant.
// POST /v1/planetary-hour/at
func (s *Server) handlePlanetaryHourAt(w http.ResponseWriter, r *http.Request) {
	var req hourAtRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.At.IsZero() {
		req.At = time.Now()
	}
	hr, err := s.calc.PlanetaryHourAt(r.Context(), req.At, req.SolarDay)
	if err != nil {
		s.writeCalcError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hourResponse(hr))
}

// handlePlanetaryDay lists the 24 hours of a weekday.
// GET /v1/planetary-day?weekday=6
func (s *Server) handlePlanetaryDay(w http.ResponseWriter, r *http.Request) {
	weekday, ok := queryInt(w, r, "weekday")
	if !ok {
		return
	}
	hours, err := s.calc.PlanetaryDay(r.Context(), weekday)
	if err != nil {
		s.writeCalcError(w, r, err)
		return
	}
	out := make([]map[string]interface{}, len(hours))
	for i, hr := range hours {
		out[i] = hourResponse(hr)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"weekday": weekday,
		"mode":    s.calc.Config().PlanetaryMode,
		"hours":   out,
	})
}

type personRequest struct {
	Name   string `json:"name"`
	Mother string `json:"mother,omitempty"`
}

type compatibilityRequest struct {
	Person1 personRequest `json:"person1"`
	Person2 personRequest `json:"person2"`
	Variant string        `json:"variant,omitempty"`
}

// handleCompatibility scores two names.
// POST /v1/compatibility
func (s *Server) handleCompatibility(w http.ResponseWriter, r *http.Request) {
	var req compatibilityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx := r.Context()
	a, err := s.calc.ComputeNumericProfile(ctx, req.Person1.Name, req.Variant)
	if err != nil {
		s.writeCalcError(w, r, err)
		return
	}
	b, err := s.calc.ComputeNumericProfile(ctx, req.Person2.Name, req.Variant)
	if err != nil {
		s.writeCalcError(w, r, err)
		return
	}
	motherA, err := s.optionalProfile(r, req.Person1.Mother, req.Variant)
	if err != nil {
		s.writeCalcError(w, r, err)
		return
	}
	motherB, err := s.optionalProfile(r, req.Person2.Mother, req.Variant)
	if err != nil {
		s.writeCalcError(w, r, err)
		return
	}

	res, err := s.calc.ScoreCompatibility(ctx, a, b, motherA, motherB)
	if err != nil {
		s.writeCalcError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"person1": a,
		"person2": b,
		"result":  res,
	})
}

// handleBalance measures a user element against a context element, or
// against the ruler of a weekday (and optionally an hour).
// GET /v1/balance?user=fire&context=water
// GET /v1/balance?user=fire&weekday=2&hour=5
func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	user, err := domain.ParseElement(q.Get("user"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var against domain.Element
	switch {
	case q.Get("context") != "":
		if against, err = domain.ParseElement(q.Get("context")); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	case q.Get("weekday") != "":
		weekday, ok := queryInt(w, r, "weekday")
		if !ok {
			return
		}
		if q.Get("hour") != "" {
			hour, ok := queryInt(w, r, "hour")
			if !ok {
				return
			}
			against, err = planetary.HourElement(weekday, hour)
		} else {
			against, err = planetary.DayElement(weekday)
		}
		if err != nil {
			s.writeCalcError(w, r, err)
			return
		}
	default:
		writeError(w, http.StatusBadRequest, "one of context or weekday is required")
		return
	}

	st, err := s.calc.ComputeBalance(r.Context(), user, against)
	if err != nil {
		s.writeCalcError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

type readingRequest struct {
	Name     string               `json:"name"`
	Mother   string               `json:"mother,omitempty"`
	Birth    string               `json:"birth,omitempty"` // YYYY-MM-DD
	Variant  string               `json:"variant,omitempty"`
	At       time.Time           `json:"at"`
	SolarDay *planetary.SolarDay `json:"solar_day,omitempty"`
}

// handleReading builds a full reading.
// POST /v1/reading
func (s *Server) handleReading(w http.ResponseWriter, r *http.Request) {
	var req readingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	birth, ok := parseBirth(w, req.Birth)
	if !ok {
		return
	}
	if req.At.IsZero() {
		req.At = time.Now()
	}

	p := calculator.Person{Name: req.Name, Mother: req.Mother, Birth: birth, Variant: req.Variant}
	reading, err := s.calc.Reading(r.Context(), p, req.At, req.SolarDay)
	if err != nil {
		s.writeCalcError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reading)
}

// handleSpans returns recent spans, or every span of one trace.
// GET /api/debug/spans?limit=50
// GET /api/debug/spans?trace=ID
func (s *Server) handleSpans(w http.ResponseWriter, r *http.Request) {
	tracer := s.calc.Tracer()
	if id := r.URL.Query().Get("trace"); id != "" {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"trace_id": id,
			"spans":    tracer.Trace(id),
		})
		return
	}

	limit := 100
	if r.URL.Query().Get("limit") != "" {
		n, ok := queryInt(w, r, "limit")
		if !ok {
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total": tracer.SpanCount(),
		"spans": tracer.Spans(limit),
	})
}

// ─── Helpers ────────────────────────────────────────────────────────────────

func (s *Server) optionalProfile(r *http.Request, text, variant string) (*domain.NumericProfile, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	p, err := s.calc.ComputeNumericProfile(r.Context(), text, variant)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// queryInt reads a required integer query parameter, writing a 400 on
// failure.
func queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		writeError(w, http.StatusBadRequest, name+" is required")
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, name+" must be an integer")
		return 0, false
	}
	return n, true
}

func parseBirth(w http.ResponseWriter, s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		writeError(w, http.StatusBadRequest, "birth must be YYYY-MM-DD")
		return nil, false
	}
	return &t, true
}

// hourResponse flattens a planetary hour with the ruler's metadata.
func hourResponse(hr domain.PlanetaryHour) map[string]interface{} {
	info := planetary.InfoOf(hr.Ruler)
	out := map[string]interface{}{
		"weekday":    hr.Weekday,
		"hour_index": hr.HourIndex,
		"ruler":      hr.Ruler,
		"day_ruler":  hr.DayRuler,
		"night":      hr.Night,
		"arabic":     info.Arabic,
		"element":    info.Element,
	}
	if hr.Start != nil && hr.End != nil {
		out["start"] = hr.Start
		out["end"] = hr.End
		out["minutes"] = hr.Duration().Minutes()
	}
	return out
}
