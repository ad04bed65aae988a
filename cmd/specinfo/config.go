package main

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-spectra/spectral/fit"
)

var errInvalidConfig = errors.New("specinfo: invalid configuration")

// config is assembled from flags, SPECINFO_* environment variables and an
// optional YAML file, in that order of precedence.
type config struct {
	Input   string  `mapstructure:"-"`
	Delta   float64 `mapstructure:"delta"`
	Fit     bool    `mapstructure:"fit"`
	Method  string  `mapstructure:"method"`
	Sigma   float64 `mapstructure:"sigma"`
	Plot    string  `mapstructure:"plot"`
	Verbose int     `mapstructure:"verbose"`
}

// Validate reports the first unusable setting.
func (c config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("%w: no spectrum file given", errInvalidConfig)
	}
	if c.Delta < 0 || math.IsNaN(c.Delta) || math.IsInf(c.Delta, 0) {
		return fmt.Errorf("%w: delta must be >= 0: %v", errInvalidConfig, c.Delta)
	}
	if c.Sigma < 0 || math.IsNaN(c.Sigma) || math.IsInf(c.Sigma, 0) {
		return fmt.Errorf("%w: sigma must be >= 0: %v", errInvalidConfig, c.Sigma)
	}
	if _, ok := fit.ParseMethod(c.Method); !ok {
		return fmt.Errorf("%w: unknown fit method %q", errInvalidConfig, c.Method)
	}
	if c.Verbose < 0 {
		return fmt.Errorf("%w: verbosity must be >= 0: %d", errInvalidConfig, c.Verbose)
	}
	return nil
}

func loadConfig(args []string, stderr io.Writer) (config, error) {
	fs := pflag.NewFlagSet("specinfo", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Float64("delta", 0, "peak detection threshold in count rate units (0: 5% of the largest rate)")
	fs.Bool("fit", false, "fit a linear background plus one Gaussian per detected peak")
	fs.String("method", fit.NelderMead.String(), "fit method: nelder-mead or bfgs")
	fs.Float64("sigma", 0, "initial Gaussian width in energy units (0: two channel widths)")
	fs.String("plot", "", "write a PNG of data and fitted model to this path")
	fs.String("config", "", "read settings from a YAML file")
	fs.CountP("verbose", "v", "log progress to stderr; repeat for more detail")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: specinfo [flags] spectrum-file\n\n")
		fmt.Fprintf(stderr, "Detects peaks in a gamma-ray spectrum (.spe or two-column text) and\n")
		fmt.Fprintf(stderr, "optionally fits them with Gaussians on a linear background.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nEvery flag can also be set as SPECINFO_<NAME> or in the config file.\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  specinfo cs137.spe\n")
		fmt.Fprintf(stderr, "  specinfo --delta 0.5 --fit --plot cs137.png cs137.spe\n")
		fmt.Fprintf(stderr, "  SPECINFO_METHOD=bfgs specinfo --fit -vv cs137.dat\n")
	}
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	v := viper.New()
	v.SetEnvPrefix("SPECINFO")
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return config{}, fmt.Errorf("binding flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return config{}, fmt.Errorf("decoding config: %w", err)
	}
	if fs.NArg() > 1 {
		return config{}, fmt.Errorf("%w: expected one spectrum file, got %d", errInvalidConfig, fs.NArg())
	}
	cfg.Input = fs.Arg(0)

	return cfg, cfg.Validate()
}
