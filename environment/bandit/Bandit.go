// Package bandit implements stationary multi-armed bandit environments
package bandit

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/utils/matutils"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"
)

// DefaultMeans is the interval from which lever means are drawn by New
var DefaultMeans = r1.Interval{Min: 0, Max: 10}

// MultiArmed is a collection of machines, each with the same number of
// levers. Pulling a lever of a machine samples a reward vector for the
// whole machine from a multivariate normal distribution with the
// machine's lever means and a covariance of σ²I, and returns the
// component belonging to the pulled lever. Lever rewards are therefore
// independent, share a single variance, and are stationary.
type MultiArmed struct {
	means    *mat.Dense
	stdDev   float64
	machines []*distmv.Normal
	sample   []float64

	machineSpec environment.Spec
	leverSpec   environment.Spec
}

// New creates a new MultiArmed bandit with the given number of machines
// and levers per machine. Lever means are drawn uniformly from the
// interval means.
func New(machines, levers int, stdDev float64, means r1.Interval,
	seed uint64) (*MultiArmed, error) {
	if machines <= 0 || levers <= 0 {
		return nil, fmt.Errorf("new: need at least one machine and lever, "+
			"got %d machines with %d levers", machines, levers)
	}
	if means.Max < means.Min {
		return nil, fmt.Errorf("new: invalid mean interval [%v, %v]",
			means.Min, means.Max)
	}

	bounds := environment.RepeatInterval(means, machines*levers)
	starter := environment.NewUniformStarter(bounds, seed)
	drawn := starter.Start()

	meanTable := mat.NewDense(machines, levers, nil)
	for i := 0; i < drawn.Len(); i++ {
		meanTable.Set(i/levers, i%levers, drawn.AtVec(i))
	}

	return NewWithMeans(meanTable, stdDev, seed+1)
}

// NewWithMeans creates a new MultiArmed bandit with fixed lever means.
// Row i of means holds the lever means of machine i.
func NewWithMeans(means mat.Matrix, stdDev float64,
	seed uint64) (*MultiArmed, error) {
	if stdDev <= 0 {
		return nil, fmt.Errorf("newWithMeans: standard deviation must be "+
			"positive, got %v", stdDev)
	}

	m, n := means.Dims()
	cov := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		cov.SetSym(i, i, stdDev*stdDev)
	}

	source := rand.NewSource(seed)
	meanTable := mat.DenseCopyOf(means)
	machines := make([]*distmv.Normal, m)
	for i := range machines {
		normal, ok := distmv.NewNormal(meanTable.RawRowView(i), cov, source)
		if !ok {
			return nil, fmt.Errorf("newWithMeans: covariance of machine %d "+
				"is not positive definite", i)
		}
		machines[i] = normal
	}

	return &MultiArmed{
		means:       meanTable,
		stdDev:      stdDev,
		machines:    machines,
		sample:      make([]float64, n),
		machineSpec: environment.NewSpec(environment.Action, m),
		leverSpec:   environment.NewSpec(environment.Action, n),
	}, nil
}

// Pull pulls a lever of a machine and returns the sampled reward
func (b *MultiArmed) Pull(machine, lever int) (float64, error) {
	if err := b.machineSpec.Check("pull", machine); err != nil {
		return 0, err
	}
	if err := b.leverSpec.Check("pull", lever); err != nil {
		return 0, err
	}

	b.machines[machine].Rand(b.sample)
	return b.sample[lever], nil
}

// Dims returns the number of machines and levers per machine
func (b *MultiArmed) Dims() (machines, levers int) {
	return b.means.Dims()
}

// StdDev returns the standard deviation shared by all lever rewards
func (b *MultiArmed) StdDev() float64 {
	return b.stdDev
}

// Means returns a copy of the true lever means
func (b *MultiArmed) Means() *mat.Dense {
	return mat.DenseCopyOf(b.means)
}

// Best returns the lever with the largest true mean and that mean
func (b *MultiArmed) Best() (machine, lever int, mean float64) {
	machine, lever = matutils.ArgMax(b.means)
	return machine, lever, b.means.At(machine, lever)
}

func (b *MultiArmed) String() string {
	m, n := b.Dims()
	return fmt.Sprintf("MultiArmed | Machines: %d  |  Levers: %d  |  "+
		"StdDev: %.2f", m, n, b.stdDev)
}
