package cli

import (
	"bufio"
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	kindRaw    = "raw"
	kindInt    = "int"
	kindFloat  = "float"
	kindRange  = "range"
	kindRangef = "rangef"
)

// DrawOptions configure the draw command.
type DrawOptions struct {
	GeneratorOptions `mapstructure:",squash"`

	Count int    `mapstructure:"count"`
	Kind  string `mapstructure:"kind"`
	N     int64  `mapstructure:"n"`
	Min   string `mapstructure:"min"`
	Max   string `mapstructure:"max"`

	// parsed bounds, set by Validate
	lo, hi   int64
	lof, hif float32
}

func (o *DrawOptions) AddFlags(fs *pflag.FlagSet) {
	o.GeneratorOptions.AddFlags(fs)
	fs.IntVarP(&o.Count, "count", "c", 10, "Number of values to draw.")
	fs.StringVarP(&o.Kind, "kind", "k", kindRaw, "Kind of value: raw, int, float, range or rangef.")
	fs.Int64Var(&o.N, "n", 100, "Exclusive upper bound for kind int.")
	fs.StringVar(&o.Min, "min", "0", "Inclusive lower bound for kind range and rangef.")
	fs.StringVar(&o.Max, "max", "100", "Exclusive upper bound for kind range and rangef.")
}

func (o *DrawOptions) Validate() []error {
	errs := o.GeneratorOptions.Validate()
	if o.Count < 0 {
		errs = append(errs, fmt.Errorf("count must not be negative, got %d", o.Count))
	}
	switch o.Kind {
	case kindRaw, kindFloat:
	case kindInt:
		if o.N <= 0 {
			errs = append(errs, fmt.Errorf("n must be positive, got %d", o.N))
		} else if o.Width == 32 && !fitsInt32(o.N) {
			errs = append(errs, fmt.Errorf("n %d does not fit into an int32", o.N))
		}
	case kindRange:
		errs = append(errs, o.parseIntBounds()...)
	case kindRangef:
		errs = append(errs, o.parseFloatBounds()...)
	default:
		errs = append(errs, fmt.Errorf("unknown kind %q", o.Kind))
	}
	return errs
}

func (o *DrawOptions) parseIntBounds() []error {
	var errs []error
	var err error
	if o.lo, err = strconv.ParseInt(o.Min, 10, 64); err != nil {
		errs = append(errs, fmt.Errorf("min: %w", err))
	}
	if o.hi, err = strconv.ParseInt(o.Max, 10, 64); err != nil {
		errs = append(errs, fmt.Errorf("max: %w", err))
	}
	if len(errs) > 0 {
		return errs
	}
	switch {
	case o.hi <= o.lo:
		errs = append(errs, fmt.Errorf("max %d must be greater than min %d", o.hi, o.lo))
	case o.Width == 32 && !(fitsInt32(o.lo) && fitsInt32(o.hi) && fitsInt32(o.hi-o.lo)):
		errs = append(errs, fmt.Errorf("[%d, %d) does not fit into an int32 range", o.lo, o.hi))
	case o.hi-o.lo <= 0:
		errs = append(errs, fmt.Errorf("[%d, %d) is wider than MaxInt64", o.lo, o.hi))
	}
	return errs
}

func (o *DrawOptions) parseFloatBounds() []error {
	lo, err1 := strconv.ParseFloat(o.Min, 32)
	hi, err2 := strconv.ParseFloat(o.Max, 32)
	var errs []error
	if err1 != nil {
		errs = append(errs, fmt.Errorf("min: %w", err1))
	}
	if err2 != nil {
		errs = append(errs, fmt.Errorf("max: %w", err2))
	}
	if len(errs) > 0 {
		return errs
	}
	o.lof, o.hif = float32(lo), float32(hi)
	if !(o.hif > o.lof) || math.IsInf(float64(o.hif-o.lof), 0) {
		errs = append(errs, fmt.Errorf("[%g, %g) is empty or not finite", o.lof, o.hif))
	}
	return errs
}

func (a *App) drawCommand() *cobra.Command {
	opts := &DrawOptions{}
	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Print values drawn from a seeded generator, one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(opts); err != nil {
				return err
			}
			return a.draw(cmd, opts)
		},
	}
	cmd.Flags().SortFlags = false
	opts.AddFlags(cmd.Flags())
	return cmd
}

func (a *App) draw(cmd *cobra.Command, opts *DrawOptions) error {
	g, err := newGenerator(opts.GeneratorOptions)
	if err != nil {
		return err
	}
	a.log.Info().Int("width", opts.Width).Int64("seed", opts.Seed).Str("kind", opts.Kind).Int("count", opts.Count).Msg("drawing values")

	w := bufio.NewWriter(cmd.OutOrStdout())
	for range opts.Count {
		var s string
		switch opts.Kind {
		case kindRaw:
			s = strconv.FormatUint(g.raw(), 10)
		case kindInt:
			s = strconv.FormatInt(g.next(opts.N), 10)
		case kindFloat:
			s = formatFloat(g.nextf())
		case kindRange:
			s = strconv.FormatInt(g.rng(opts.lo, opts.hi), 10)
		case kindRangef:
			s = formatFloat(g.rangef(opts.lof, opts.hif))
		}
		if _, err := fmt.Fprintln(w, s); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	a.log.Debug().Uint64("twists", g.twists()).Msg("done")
	return nil
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
