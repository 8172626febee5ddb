package dp

import "fmt"

const (
	// DefaultDiscount is the discount used when none is configured
	DefaultDiscount = 1.0

	// DefaultTheta is the convergence threshold used when none is
	// configured
	DefaultTheta = 1e-4
)

// Config configures an Evaluator
type Config struct {
	Discount float64
	Theta    float64 // sweeps stop once max |ΔV| falls below Theta

	// MaxSweeps bounds the number of sweeps of an evaluation, zero
	// meaning unbounded
	MaxSweeps int
}

// DefaultConfig returns the Config of an undiscounted evaluation with
// threshold DefaultTheta and no sweep limit
func DefaultConfig() Config {
	return Config{Discount: DefaultDiscount, Theta: DefaultTheta}
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("discount must be in [0, 1], got %v", c.Discount)
	}
	if c.Theta <= 0 {
		return fmt.Errorf("theta must be positive, got %v", c.Theta)
	}
	if c.MaxSweeps < 0 {
		return fmt.Errorf("maxSweeps cannot be negative, got %d", c.MaxSweeps)
	}
	return nil
}
