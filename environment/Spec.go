package environment

import "fmt"

// SpecType determines what kind of specification a Spec is. A Spec can
// specify the layout of an action or an observation
type SpecType int

const (
	Action SpecType = iota
	Observation
)

func (s SpecType) String() string {
	if s == Action {
		return "Action"
	}
	return "Observation"
}

// Spec describes a finite set of actions or observations. Members of
// the set are enumerated by the integers 0, 1, ..., N-1.
type Spec struct {
	Type SpecType
	N    int
}

// NewSpec constructs a new specification of a set with n members
func NewSpec(t SpecType, n int) Spec {
	if n <= 0 {
		panic(fmt.Sprintf("newSpec: %v set must be non-empty, got %d members",
			t, n))
	}
	return Spec{t, n}
}

// Contains returns whether i enumerates a member of the set
func (s Spec) Contains(i int) bool {
	return i >= 0 && i < s.N
}

// Check returns an IndexError if i does not enumerate a member of the
// set
func (s Spec) Check(op string, i int) error {
	if !s.Contains(i) {
		return &IndexError{Op: op, Kind: s.Type.String(), Index: i, Bound: s.N}
	}
	return nil
}
