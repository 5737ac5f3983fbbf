package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/TomTonic/mtwist"
)

// maxBuckets bounds the memory of the check command.
const maxBuckets = 1 << 20

// maxListedBuckets is the largest n for which every bucket is printed.
const maxListedBuckets = 32

var errNotUniform = errors.New("distribution is not uniform")

// CheckOptions configure the check command.
type CheckOptions struct {
	GeneratorOptions `mapstructure:",squash"`

	N       int64 `mapstructure:"n"`
	Samples int   `mapstructure:"samples"`
}

func (o *CheckOptions) AddFlags(fs *pflag.FlagSet) {
	o.GeneratorOptions.AddFlags(fs)
	fs.Int64Var(&o.N, "n", 7, "Number of buckets, values are drawn with Next(n).")
	fs.IntVar(&o.Samples, "samples", 1_000_000, "Number of values to draw.")
}

func (o *CheckOptions) Validate() []error {
	errs := o.GeneratorOptions.Validate()
	if o.N < 2 || o.N > maxBuckets {
		errs = append(errs, fmt.Errorf("n must be in [2, %d], got %d", maxBuckets, o.N))
	}
	// the chi-squared approximation needs about five expected hits per bucket
	if int64(o.Samples) < 5*o.N {
		errs = append(errs, fmt.Errorf("samples must be at least 5*n = %d, got %d", 5*o.N, o.Samples))
	}
	return errs
}

func (a *App) checkCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run a chi-squared uniformity test on Next(n)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(opts); err != nil {
				return err
			}
			return a.check(cmd, opts)
		},
	}
	cmd.Flags().SortFlags = false
	opts.AddFlags(cmd.Flags())
	return cmd
}

func (a *App) check(cmd *cobra.Command, opts *CheckOptions) error {
	g, err := newGenerator(opts.GeneratorOptions)
	if err != nil {
		return err
	}
	a.log.Info().Int("width", opts.Width).Int64("seed", opts.Seed).Int64("n", opts.N).Int("samples", opts.Samples).Msg("sampling")

	counts := make([]uint64, opts.N)
	for range opts.Samples {
		counts[g.next(opts.N)]++
	}
	stat, df, err := mtwist.ChiSquare(counts)
	if err != nil {
		return err
	}
	critical := mtwist.ChiSquareCritical999(df)
	expected := float64(lo.Sum(counts)) / float64(len(counts))
	a.log.Debug().Float64("chi2", stat).Int("df", df).Float64("critical", critical).Uint64("twists", g.twists()).Msg("sampled")

	out := cmd.OutOrStdout()
	if opts.N <= maxListedBuckets {
		table := uitable.New()
		table.Separator = "  "
		table.RightAlign(0)
		table.RightAlign(1)
		table.RightAlign(2)
		table.AddRow("BUCKET", "OBSERVED", "DEVIATION")
		for i, c := range counts {
			table.AddRow(i, c, fmt.Sprintf("%+.3f%%", (float64(c)-expected)/expected*100))
		}
		fmt.Fprintln(out, table)
	}

	summary := uitable.New()
	summary.Separator = " "
	summary.AddRow("chi-squared:", fmt.Sprintf("%.3f", stat))
	summary.AddRow("degrees of freedom:", df)
	summary.AddRow("critical value (p=0.001):", fmt.Sprintf("%.3f", critical))
	fmt.Fprintln(out, summary)

	if stat > critical {
		fmt.Fprintln(out, color.RedString("FAIL"))
		return fmt.Errorf("MT%d seed %d, n=%d: %w", opts.Width, opts.Seed, opts.N, errNotUniform)
	}
	fmt.Fprintln(out, color.GreenString("PASS"))
	return nil
}
