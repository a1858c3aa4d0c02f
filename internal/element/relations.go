package element

import (
	"fmt"

	"github.com/zaibaitech/asrar-sub001/internal/domain"
)

// ─── Relation Table ─────────────────────────────────────────────────────────

// Relations is the static opposite/complement table and the 4×4 pair matrix
// derived from it once at construction.
type Relations struct {
	version    string
	opposite   map[domain.Element]domain.Element
	complement map[domain.Element]domain.Element
	// dominant names the naturally dominant member of each complementary pair.
	dominant map[domain.Element]domain.Element
	matrix   [4][4]domain.Relation
}

// RelationSpec is the raw configuration a Relations table is built from.
type RelationSpec struct {
	Version string
	// Each pair is listed once; the table is made symmetric.
	Opposites   [][2]domain.Element
	Complements [][2]domain.Element
	// Dominant lists, per complementary pair, the member that leads.
	Dominant []domain.Element
}

// DefaultSpec is the classical table: Fire↔Water and Air↔Earth oppose,
// Fire↔Air and Water↔Earth complement; fire leads air, water leads earth.
var DefaultSpec = RelationSpec{
	Version:     "classical/1",
	Opposites:   [][2]domain.Element{{domain.Fire, domain.Water}, {domain.Air, domain.Earth}},
	Complements: [][2]domain.Element{{domain.Fire, domain.Air}, {domain.Water, domain.Earth}},
	Dominant:    []domain.Element{domain.Fire, domain.Water},
}

// DefaultRelations is built from DefaultSpec at init.
var DefaultRelations = MustRelations(DefaultSpec)

// NewRelations validates spec and builds the pair matrix. Every element must
// have exactly one opposite and one complement, distinct from each other and
// from itself, so that all 16 ordered pairs classify.
func NewRelations(spec RelationSpec) (*Relations, error) {
	bad := func(format string, args ...any) error {
		return &domain.ConfigurationError{Table: "element relations", Name: spec.Version, Reason: fmt.Sprintf(format, args...)}
	}

	r := &Relations{
		version:    spec.Version,
		opposite:   make(map[domain.Element]domain.Element, 4),
		complement: make(map[domain.Element]domain.Element, 4),
		dominant:   make(map[domain.Element]domain.Element, 4),
	}

	link := func(m map[domain.Element]domain.Element, kind string, pairs [][2]domain.Element) error {
		for _, p := range pairs {
			a, b := p[0], p[1]
			if !a.Valid() || !b.Valid() {
				return bad("%s pair %v has unknown element", kind, p)
			}
			if a == b {
				return bad("%s pair %v links an element to itself", kind, p)
			}
			if _, dup := m[a]; dup {
				return bad("%s of %s listed twice", kind, a)
			}
			if _, dup := m[b]; dup {
				return bad("%s of %s listed twice", kind, b)
			}
			m[a], m[b] = b, a
		}
		if len(m) != 4 {
			return bad("%s table covers %d elements, want 4", kind, len(m))
		}
		return nil
	}
	if err := link(r.opposite, "opposite", spec.Opposites); err != nil {
		return nil, err
	}
	if err := link(r.complement, "complement", spec.Complements); err != nil {
		return nil, err
	}
	for _, e := range domain.Elements() {
		if r.opposite[e] == r.complement[e] {
			return nil, bad("%s has the same opposite and complement", e)
		}
	}

	for _, d := range spec.Dominant {
		c, ok := r.complement[d]
		if !ok {
			return nil, bad("dominant element %q unknown", d)
		}
		if _, dup := r.dominant[d]; dup {
			return nil, bad("dominant for pair %s/%s listed twice", d, c)
		}
		r.dominant[d], r.dominant[c] = d, d
	}
	if len(r.dominant) != 4 {
		return nil, bad("dominant members cover %d elements, want 4", len(r.dominant))
	}

	for _, a := range domain.Elements() {
		for _, b := range domain.Elements() {
			var rel domain.Relation
			switch b {
			case a:
				rel = domain.RelationSame
			case r.complement[a]:
				rel = domain.RelationComplementary
			case r.opposite[a]:
				rel = domain.RelationOpposing
			default:
				rel = domain.RelationNeutral
			}
			r.matrix[index(a)][index(b)] = rel
		}
	}
	return r, nil
}

// MustRelations is NewRelations for package-level tables.
func MustRelations(spec RelationSpec) *Relations {
	r, err := NewRelations(spec)
	if err != nil {
		panic(err)
	}
	return r
}

// Version returns the table's configuration version.
func (r *Relations) Version() string { return r.version }

// Opposite returns the element opposing e.
func (r *Relations) Opposite(e domain.Element) domain.Element { return r.opposite[e] }

// Complement returns the element complementing e.
func (r *Relations) Complement(e domain.Element) domain.Element { return r.complement[e] }

// Dominant returns the leading member of the complementary pair containing e.
func (r *Relations) Dominant(e domain.Element) domain.Element { return r.dominant[e] }

// Relate classifies the ordered pair (a, b). Both must be valid elements.
func (r *Relations) Relate(a, b domain.Element) domain.Relation {
	return r.matrix[index(a)][index(b)]
}

// Relate uses DefaultRelations.
func Relate(a, b domain.Element) domain.Relation { return DefaultRelations.Relate(a, b) }

// index maps an element to its matrix row. Invalid elements panic: callers
// validate at the boundary and the core never sees unknown elements.
func index(e domain.Element) int {
	switch e {
	case domain.Fire:
		return 0
	case domain.Water:
		return 1
	case domain.Air:
		return 2
	case domain.Earth:
		return 3
	}
	panic(fmt.Sprintf("element: invalid element %q", e))
}
