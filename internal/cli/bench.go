package cli

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/TomTonic/mtwist"
)

// BenchOptions configure the bench command.
type BenchOptions struct {
	Seed   int64    `mapstructure:"seed"`
	Batch  int      `mapstructure:"batch"`
	Rounds int      `mapstructure:"rounds"`
	Reps   uint64   `mapstructure:"reps"`
	Faster []string `mapstructure:"faster"`

	thresholds []float64
}

func (o *BenchOptions) AddFlags(fs *pflag.FlagSet) {
	fs.Int64VarP(&o.Seed, "seed", "s", 5489, "Seed of both generators and of the bootstrap resampling.")
	fs.IntVar(&o.Batch, "batch", 10_000, "Words drawn per timed batch.")
	fs.IntVar(&o.Rounds, "rounds", 101, "Number of timed batches per generator.")
	fs.Uint64Var(&o.Reps, "reps", 10_000, "Bootstrap repetitions.")
	fs.StringSliceVar(&o.Faster, "faster", []string{"1.0", "1.1", "1.25"},
		"Factors by which MT64 is tested to be faster than MT32 per word.")
}

func (o *BenchOptions) Validate() []error {
	var errs []error
	if !fitsInt32(o.Seed) {
		errs = append(errs, fmt.Errorf("seed %d does not fit into an int32", o.Seed))
	}
	if o.Batch <= 0 {
		errs = append(errs, fmt.Errorf("batch must be positive, got %d", o.Batch))
	}
	if o.Rounds < mtwist.MinimumDataPoints {
		errs = append(errs, fmt.Errorf("rounds must be at least %d, got %d", mtwist.MinimumDataPoints, o.Rounds))
	}
	if o.Reps == 0 {
		errs = append(errs, fmt.Errorf("reps must be positive"))
	}
	o.thresholds = o.thresholds[:0]
	for _, s := range o.Faster {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || !(f > 0) {
			errs = append(errs, fmt.Errorf("faster: %q is not a positive factor", s))
			continue
		}
		o.thresholds = append(o.thresholds, mtwist.F2T(f))
	}
	return errs
}

func (a *App) benchCommand() *cobra.Command {
	opts := &BenchOptions{}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare the per-word runtime of MT64 and MT32",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(opts); err != nil {
				return err
			}
			return a.bench(cmd, opts)
		},
	}
	cmd.Flags().SortFlags = false
	opts.AddFlags(cmd.Flags())
	return cmd
}

func (a *App) bench(cmd *cobra.Command, opts *BenchOptions) error {
	g32 := mtwist.New32(int32(opts.Seed))
	g64 := mtwist.New64(opts.Seed)
	var sink uint64

	a.log.Info().Int("batch", opts.Batch).Int("rounds", opts.Rounds).Int64("clock_precision_ns", mtwist.ClockPrecision()).Msg("timing")

	// MT64 returns twice the bits per word, so it is compared per 64 bits of output:
	// one batch of MT64 words against two batches of MT32 words.
	times32 := make([]int64, 0, opts.Rounds)
	times64 := make([]int64, 0, opts.Rounds)
	for range opts.Rounds {
		times32 = append(times32, mtwist.TimeBatch(2*opts.Batch, func() { sink += uint64(g32.Uint32()) }))
		times64 = append(times64, mtwist.TimeBatch(opts.Batch, func() { sink += g64.Uint64() }))
	}
	a.log.Debug().Uint64("sink", sink).Uint64("twists32", g32.Twists()).Uint64("twists64", g64.Twists()).Msg("timed")

	toFloat := func(ns int64, _ int) float64 { return float64(ns) }
	sample32 := lo.Map(times32, toFloat)
	sample64 := lo.Map(times64, toFloat)

	results, err := mtwist.CompareRuntimes(sample64, sample32, opts.thresholds, opts.Reps, opts.Seed)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	stats := uitable.New()
	stats.Separator = "  "
	stats.AddRow("GENERATOR", "MEDIAN NS/BATCH", "MEAN", "STDDEV")
	for _, s := range []struct {
		name string
		data []float64
	}{{"MT32 (2 words)", sample32}, {"MT64 (1 word)", sample64}} {
		mean, _, stddev := mtwist.Statistics(s.data)
		stats.AddRow(s.name, fmt.Sprintf("%.0f", mtwist.Median(s.data)), fmt.Sprintf("%.0f", mean), fmt.Sprintf("%.0f", stddev))
	}
	fmt.Fprintln(out, stats)

	table := uitable.New()
	table.Separator = "  "
	table.AddRow("MT64 FASTER BY", "CONFIDENCE")
	for _, r := range results {
		conf := fmt.Sprintf("%.4f", r.Confidence)
		if r.Confidence >= 0.95 {
			conf = color.GreenString(conf)
		}
		table.AddRow(fmt.Sprintf("%.1f%%", r.RelativeSpeedupSampleAvsSampleB*100), conf)
	}
	fmt.Fprintln(out, table)
	return nil
}
