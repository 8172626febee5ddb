// Package report prints finished experiment results to the console
package report

import (
	"fmt"
	"io"

	"github.com/logrusorgru/aurora"

	"github.com/samuelfneumann/tabular/agent/tabular/bandit"
	"github.com/samuelfneumann/tabular/agent/tabular/dp"
	"github.com/samuelfneumann/tabular/environment/blackjack"
	"github.com/samuelfneumann/tabular/experiment"
	"gonum.org/v1/gonum/mat"
)

// FirstActions is the number of bandit actions listed per strategy
const FirstActions = 10

// Reporter writes human-readable summaries of experiment results
type Reporter struct {
	w  io.Writer
	au aurora.Aurora
}

// New returns a Reporter writing to w, with colours if colors is true
func New(w io.Writer, colors bool) *Reporter {
	return &Reporter{w, aurora.NewAurora(colors)}
}

func (r *Reporter) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.w, format, args...)
}

func (r *Reporter) heading(title string) {
	r.printf("%s\n", r.au.Bold(r.au.Cyan(title)))
}

// Bandit reports the final cumulative reward and first actions of both
// strategies, together with their action values
func (r *Reporter) Bandit(result experiment.BanditResult) {
	r.heading("Multi-armed bandit")

	r.printf("Lever means:\n%v\n", format(result.Means))
	r.printf("best lever %v with mean %.3f\n", result.Best,
		result.Means.At(result.Best.Machine, result.Best.Lever))
	strategies := []struct {
		name    string
		history bandit.History
		q       *mat.Dense
	}{
		{"epsilon-greedy", result.EpsilonGreedy, result.EpsilonGreedyQ},
		{"softmax", result.Softmax, result.SoftmaxQ},
	}

	best := max(result.EpsilonGreedy.Total(), result.Softmax.Total())
	for _, s := range strategies {
		total := s.history.Total()
		value := r.au.Yellow(fmt.Sprintf("%.3f", total))
		if total == best {
			value = r.au.Green(fmt.Sprintf("%.3f", total))
		}
		r.printf("%-15s final cumulative reward %v after %d actions\n",
			s.name, value, s.history.Len())

		n := min(FirstActions, s.history.Len())
		r.printf("%-15s first actions %v\n", "", s.history.Actions[:n])
		r.printf("%-15s action values:\n%v\n", "", format(s.q))
	}
}

// Blackjack reports the learned policy with and without a usable ace,
// and the win, draw and loss counts of training and evaluation
func (r *Reporter) Blackjack(result experiment.BlackjackResult) {
	r.heading("Blackjack Monte Carlo control")
	r.printf("episodes: %d\n", result.Episodes)

	for _, ace := range []bool{true, false} {
		title := "Policy without usable ace"
		if ace {
			title = "Policy with usable ace"
		}
		r.printf("%s (rows: player sum, columns: dealer card)\n", title)

		r.printf("      ")
		for dealer := 1; dealer <= blackjack.NumDealerCards; dealer++ {
			r.printf("%3s", dealerCard(dealer))
		}
		r.printf("\n")

		for sum := blackjack.MaxSum; sum >= 12; sum-- {
			r.printf("%4d  ", sum)
			for dealer := 1; dealer <= blackjack.NumDealerCards; dealer++ {
				s := blackjack.State{Sum: sum, Dealer: dealer, UsableAce: ace}
				r.printf("  %v", r.action(result.Action(s)))
			}
			r.printf("\n")
		}
	}

	r.stats("training", result.Training)
	r.stats("evaluation", result.Evaluation)
}

// BlackjackValues reports the estimated value of every action in every
// state that was visited at least once
func (r *Reporter) BlackjackValues(result experiment.BlackjackResult) {
	r.heading("Blackjack action values")
	for _, s := range blackjack.States() {
		hits := result.Counts.At(s.Index(), int(blackjack.Hit))
		sticks := result.Counts.At(s.Index(), int(blackjack.Stick))
		if hits+sticks == 0 {
			continue
		}
		r.printf("%v  HIT %7.3f (%5.0f)  STICK %7.3f (%5.0f)  -> %v\n", s,
			result.Value(s, blackjack.Hit), hits,
			result.Value(s, blackjack.Stick), sticks,
			r.action(result.Action(s)))
	}
}

func (r *Reporter) action(a blackjack.Action) aurora.Value {
	if a == blackjack.Hit {
		return r.au.Red("H")
	}
	return r.au.Green("S")
}

func (r *Reporter) stats(name string, s experiment.Stats) {
	r.printf("%-10s wins %v  draws %v  losses %v  mean return %.3f  "+
		"mean length %.2f\n", name, r.au.Green(s.Wins), r.au.Yellow(s.Draws),
		r.au.Red(s.Losses), s.MeanReturn, s.MeanLength)
}

func dealerCard(d int) string {
	if d == 1 {
		return "A"
	}
	return fmt.Sprintf("%d", d)
}

// GridWorld reports the values and greedy policies of both evaluation
// schemes, and the path of the greedy rollout
func (r *Reporter) GridWorld(result experiment.GridWorldResult) {
	r.heading("Gridworld policy evaluation")

	schemes := []struct {
		name   string
		result dp.Result
		policy dp.Policy
	}{
		{"two-table", result.TwoTable, result.TwoTablePolicy},
		{"one-table", result.OneTable, result.OneTablePolicy},
	}
	for _, s := range schemes {
		r.printf("%s: %d sweeps, final delta %.2e\n", s.name,
			s.result.Sweeps, s.result.Delta)
		r.values(s.result.V)
		r.printf("%s", r.au.Magenta(s.policy.Format(result.Rows,
			result.Cols)))
	}

	r.printf("largest difference between schemes %.2e\n", result.SchemeDiff)

	outcome := r.au.Green("terminated")
	if !result.Terminated {
		outcome = r.au.Red("cut off")
	}
	r.printf("greedy rollout %v, return %.0f: %v\n", outcome,
		result.RolloutReturn, result.Rollout)
}

// values prints a table of state values, one row per grid row
func (r *Reporter) values(V mat.Matrix) {
	rows, cols := V.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			r.printf("%v", r.au.Blue(format2x2(V.At(i, j))))
			r.printf("%v", r.au.White("|"))
		}
		r.printf("\n")
	}
}

func format2x2(x float64) string {
	if x < 0 {
		return " -" + fmt.Sprintf("%05.2f", -x)
	}
	return fmt.Sprintf(" %05.2f", x)
}

func format(X mat.Matrix) string {
	return fmt.Sprintf("%.3f", mat.Formatted(X, mat.Squeeze()))
}
