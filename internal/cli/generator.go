package cli

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/pflag"

	"github.com/TomTonic/mtwist"
)

// GeneratorOptions select the word width and the seed of a generator.
type GeneratorOptions struct {
	Width int   `mapstructure:"width"`
	Seed  int64 `mapstructure:"seed"`
}

func (o *GeneratorOptions) AddFlags(fs *pflag.FlagSet) {
	fs.IntVarP(&o.Width, "width", "w", 32, "Word width of the generator, 32 (MT19937) or 64 (MT19937-64).")
	fs.Int64VarP(&o.Seed, "seed", "s", 5489, "Seed of the generator. Must fit into an int32 for width 32.")
}

func (o *GeneratorOptions) Validate() []error {
	var errs []error
	switch o.Width {
	case 32:
		if !fitsInt32(o.Seed) {
			errs = append(errs, fmt.Errorf("seed %d does not fit into an int32", o.Seed))
		}
	case 64:
	default:
		errs = append(errs, fmt.Errorf("width must be 32 or 64, got %d", o.Width))
	}
	return errs
}

func fitsInt32(v int64) bool {
	return v >= math.MinInt32 && v <= math.MaxInt32
}

// generator hides the word width of the underlying Mersenne Twister. Integer arguments
// must fit the word width; the options validate that before a generator is built.
type generator struct {
	width  int
	raw    func() uint64
	next   func(n int64) int64
	nextf  func() float32
	rng    func(lo, hi int64) int64
	rangef func(lo, hi float32) float32
	twists func() uint64
}

func newGenerator(o GeneratorOptions) (generator, error) {
	if errs := o.Validate(); len(errs) > 0 {
		return generator{}, errors.Join(errs...)
	}
	if o.Width == 32 {
		g := mtwist.New32(int32(o.Seed))
		return generator{
			width:  32,
			raw:    func() uint64 { return uint64(g.Uint32()) },
			next:   func(n int64) int64 { return int64(g.Next(int32(n))) },
			nextf:  g.Nextf,
			rng:    func(lo, hi int64) int64 { return int64(g.Range(int32(lo), int32(hi))) },
			rangef: g.Rangef,
			twists: g.Twists,
		}, nil
	}
	g := mtwist.New64(o.Seed)
	return generator{
		width:  64,
		raw:    g.Uint64,
		next:   g.Next,
		nextf:  g.Nextf,
		rng:    g.Range,
		rangef: g.Rangef,
		twists: g.Twists,
	}, nil
}
