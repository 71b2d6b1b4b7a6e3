// Package ids provides the identifier type used for all entity references
// (component instances, symbols, pins, signals, schematics).
package ids

import "github.com/google/uuid"

// UUID identifies an entity. The zero value is the nil sentinel and never
// identifies a live entity.
type UUID struct {
	u uuid.UUID
}

// New returns a freshly generated random UUID.
func New() UUID {
	return UUID{u: uuid.New()}
}

// Parse parses a UUID from its canonical string form.
func Parse(s string) (UUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, err
	}
	return UUID{u: u}, nil
}

// MustParse is like Parse but panics on invalid input. Intended for
// literals in tests and tools.
func MustParse(s string) UUID {
	return UUID{u: uuid.MustParse(s)}
}

// IsNil reports whether this is the nil sentinel.
func (id UUID) IsNil() bool {
	return id.u == uuid.Nil
}

// String returns the canonical string form, or the all-zero form for the
// nil sentinel.
func (id UUID) String() string {
	return id.u.String()
}
