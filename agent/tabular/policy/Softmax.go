package policy

import (
	"math"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Softmax implements a Boltzmann policy, selecting entry a with
// probability proportional to exp(Q(a) / τ).
//
// The temperature τ must be positive; it is not validated.
type Softmax struct {
	tau float64
	src rand.Source
}

// NewSoftmax returns a new Softmax policy with temperature tau
func NewSoftmax(tau float64, src rand.Source) *Softmax {
	return &Softmax{tau, src}
}

// Tau returns the temperature of the policy
func (p *Softmax) Tau() float64 {
	return p.tau
}

// Probabilities returns the probability of selecting each entry of q,
// flattened in row-major order
func (p *Softmax) Probabilities(q mat.Matrix) []float64 {
	r, c := q.Dims()
	prefs := make([]float64, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			prefs[i*c+j] = q.At(i, j) / p.tau
		}
	}

	// Shift by the maximum preference so that exp cannot overflow
	floats.AddConst(-floats.Max(prefs), prefs)
	for i := range prefs {
		prefs[i] = math.Exp(prefs[i])
	}
	floats.Scale(1/floats.Sum(prefs), prefs)

	return prefs
}

// SelectAction samples an entry of q from the softmax distribution
func (p *Softmax) SelectAction(q mat.Matrix) (int, int) {
	dist := distuv.NewCategorical(p.Probabilities(q), p.src)
	idx := int(dist.Rand())

	_, c := q.Dims()
	return idx / c, idx % c
}
