package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/samuelfneumann/tabular/config"
	"github.com/samuelfneumann/tabular/experiment"
	"github.com/samuelfneumann/tabular/render"
	"github.com/samuelfneumann/tabular/report"
	"github.com/samuelfneumann/tabular/utils/progressbar"
)

// progressEvery is the number of blackjack episodes between redraws of
// the progress bar
const progressEvery = 100

func main() {
	configPath := flag.String("config", "", "YAML configuration file, "+
		"defaults are used for missing fields")
	algorithms := flag.String("algorithms", "bandit,blackjack,gridworld",
		"comma-separated algorithms to run")
	out := flag.String("out", "", "directory to write charts and images "+
		"to, nothing is written if empty")
	verbose := flag.Bool("v", false, "log at debug level")
	colors := flag.Bool("color", true, "colour console reports")
	values := flag.Bool("values", false, "print blackjack action values")
	seed := flag.Uint64("seed", 0, "override the configured seed")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.TimeOnly,
	}).Level(level).With().Timestamp().Logger()

	c := config.Default()
	if *configPath != "" {
		var err error
		if c, err = config.Load(*configPath); err != nil {
			logger.Fatal().Err(err).Msg("could not load configuration")
		}
	}
	if passed(flag.CommandLine, "seed") {
		c.Seed = *seed
	}
	logger.Debug().Interface("config", c).Msg("configuration loaded")

	if *out != "" {
		if err := os.MkdirAll(*out, 0o755); err != nil {
			logger.Fatal().Err(err).Msg("could not create output directory")
		}
	}

	r := report.New(os.Stdout, *colors)
	for _, name := range strings.Split(*algorithms, ",") {
		var err error
		switch strings.TrimSpace(name) {
		case "bandit":
			err = runBandit(c, r, *out, logger)
		case "blackjack":
			err = runBlackjack(c, r, *values, logger)
		case "gridworld":
			err = runGridWorld(c, r, *out, logger)
		default:
			err = fmt.Errorf("no such algorithm %q", name)
		}

		if err != nil {
			logger.Fatal().Err(err).Str("algorithm", name).Msg("run failed")
		}
	}
}

func runBandit(c config.Config, r *report.Reporter, out string,
	logger zerolog.Logger) error {
	result, err := experiment.RunBandit(c.Bandit, c.Seed, logger)
	if err != nil {
		return err
	}
	r.Bandit(result)

	if out == "" {
		return nil
	}
	return writeFile(filepath.Join(out, "bandit.html"), func(f *os.File) error {
		return render.LineChart(f, "Cumulative reward",
			render.Series{Name: "epsilon-greedy",
				Values: result.EpsilonGreedy.Cumulative},
			render.Series{Name: "softmax", Values: result.Softmax.Cumulative},
		)
	})
}

func runBlackjack(c config.Config, r *report.Reporter, values bool,
	logger zerolog.Logger) error {
	bar := progressbar.NewManualProgressBar(os.Stderr, 40, c.Blackjack.Episodes)
	progress := func(done int) {
		bar.Increment()
		if done%progressEvery == 0 || done == c.Blackjack.Episodes {
			bar.Display()
		}
	}

	result, err := experiment.RunBlackjack(c.Blackjack, c.Seed, logger,
		progress)
	bar.Close()
	if err != nil {
		return err
	}

	r.Blackjack(result)
	if values {
		r.BlackjackValues(result)
	}
	return nil
}

func runGridWorld(c config.Config, r *report.Reporter, out string,
	logger zerolog.Logger) error {
	result, err := experiment.RunGridWorld(c.GridWorld, c.Seed, logger)
	if err != nil {
		return err
	}
	r.GridWorld(result)

	if out == "" {
		return nil
	}
	return writeFile(filepath.Join(out, "gridworld.png"), func(f *os.File) error {
		return render.GridPNG(f, result.TwoTable.V, result.TwoTablePolicy)
	})
}

// passed returns whether the flag name was set on the command line
func passed(fs *flag.FlagSet, name string) bool {
	var found bool
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// writeFile creates the file at path and fills it with write
func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writeFile: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writeFile: %s: %w", path, err)
	}
	return f.Close()
}
