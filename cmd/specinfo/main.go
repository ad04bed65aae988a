// Command specinfo detects and fits peaks in a gamma-ray spectrum.
//
// Usage:
//
//	specinfo [flags] spectrum-file
//
// The spectrum is read from a Maestro .spe file or a two-column text file
// with "# key: value" metadata. Maxima of the count rate are found with
// hysteresis peak detection and listed with their channel and rate, next to
// the net content and width of the region between the neighbouring minima. With
// --fit each maximum seeds a Gaussian on a linear background and the fitted
// areas are printed with their uncertainty.
//
// Examples:
//
//	specinfo cs137.spe
//	specinfo --delta 0.5 --fit cs137.spe
//	specinfo --fit --method bfgs --plot cs137.png cs137.dat
//	specinfo --config specinfo.yaml -v cs137.spe
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"text/tabwriter"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/spf13/pflag"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-spectra/dsp/peakdet"
	"github.com/cwbudde/algo-spectra/spectral/fit"
	"github.com/cwbudde/algo-spectra/spectral/ingest"
	"github.com/cwbudde/algo-spectra/spectral/model"
	"github.com/cwbudde/algo-spectra/stats/region"
	"github.com/cwbudde/algo-spectra/stats/uncertainty"
)

// autoDeltaFraction scales the largest count rate into the default
// detection threshold.
const autoDeltaFraction = 0.05

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(args, stderr)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, cfg.Verbose)

	s, err := ingest.Load(cfg.Input)
	if err != nil {
		return err
	}
	logger.V(1).Info("loaded spectrum",
		"path", cfg.Input,
		"channels", s.Len(),
		"liveTime", s.LiveTime,
		"deadTime", s.DeadTimeFraction(),
		"totalRate", s.TotalRate())

	var extrema peakdet.Result
	delta := cfg.Delta
	if delta == 0 {
		delta = autoDeltaFraction * floats.Max(s.CountRates)
	}
	if delta > 0 {
		extrema, err = peakdet.Detect(s.CountRates, delta, peakdet.WithX(s.Energies))
		if err != nil {
			return fmt.Errorf("detecting peaks (delta %g): %w", delta, err)
		}
		logger.V(1).Info("detected peaks", "delta", delta, "maxima", len(extrema.Maxima), "minima", len(extrema.Minima))
	} else {
		// Without any positive rate there is nothing to detect.
		logger.V(1).Info("no positive count rate, skipping peak detection")
	}

	peaks, err := describePeaks(s, extrema)
	if err != nil {
		return err
	}
	if err := printPeaks(stdout, peaks); err != nil {
		return err
	}

	var d *model.Decomposition
	if cfg.Fit && len(peaks) > 0 {
		var res fit.Result
		d, res, err = fitPeaks(ctx, cfg, s, peaks, logger)
		if err != nil {
			return err
		}
		if err := printFit(stdout, d, res); err != nil {
			return err
		}
	}

	if cfg.Plot != "" {
		if err := renderPlot(cfg.Plot, filepath.Base(cfg.Input), s, d); err != nil {
			return err
		}
		logger.V(1).Info("wrote plot", "path", cfg.Plot)
	}
	return nil
}

func newLogger(w io.Writer, verbosity int) logr.Logger {
	stdr.SetVerbosity(verbosity)
	return stdr.New(log.New(w, "specinfo: ", log.LstdFlags))
}

// peak is a detected maximum with the summary of the region between its
// neighbouring minima.
type peak struct {
	max     peakdet.Extremum
	channel int
	rateStd float64
	roi     region.Stats
	netStd  float64
}

func describePeaks(s *ingest.Spectrum, extrema peakdet.Result) ([]peak, error) {
	variances := s.RateVariances()

	peaks := make([]peak, 0, len(extrema.Maxima))
	for _, m := range extrema.Maxima {
		ch, err := s.Channel(m.X)
		if err != nil {
			return nil, fmt.Errorf("locating channel for %g: %w", m.X, err)
		}
		p := peak{max: m, channel: ch, rateStd: math.Sqrt(variances[ch])}

		lo, hi, err := regionBounds(s, extrema.Minima, m.X)
		if err != nil {
			return nil, err
		}
		p.roi, err = region.Calculate(s.Energies, s.CountRates, lo, hi)
		if err == nil {
			var v float64
			v, err = region.NetVariance(variances, lo, hi)
			p.netStd = math.Sqrt(v)
		}
		if err != nil {
			// Too narrow for a baseline.
			p.roi = region.Stats{Net: math.NaN(), Centroid: math.NaN(), Spread: math.NaN()}
			p.netStd = math.NaN()
		}
		peaks = append(peaks, p)
	}
	return peaks, nil
}

// regionBounds returns the channels of the closest minima on either side of
// energy e, or the ends of the spectrum where there is none.
func regionBounds(s *ingest.Spectrum, minima []peakdet.Extremum, e float64) (int, int, error) {
	lo, hi := 0, s.Len()-1
	for _, m := range minima {
		ch, err := s.Channel(m.X)
		if err != nil {
			return 0, 0, fmt.Errorf("locating channel for %g: %w", m.X, err)
		}
		switch {
		case m.X < e:
			lo = ch
		case m.X > e:
			return lo, ch, nil
		}
	}
	return lo, hi, nil
}

func fitPeaks(ctx context.Context, cfg config, s *ingest.Spectrum, peaks []peak, logger logr.Logger) (*model.Decomposition, fit.Result, error) {
	centers := make([]float64, len(peaks))
	for i, p := range peaks {
		centers[i] = p.max.X
	}

	sigma := cfg.Sigma
	if sigma == 0 {
		sigma = seedSigma(peaks, channelWidth(s.Energies))
	}
	logger.V(1).Info("seeding fit", "peaks", len(centers), "sigma", sigma)

	d, err := fit.Seed(s.Energies, s.CountRates, centers, sigma)
	if err != nil {
		return nil, fit.Result{}, err
	}

	method, _ := fit.ParseMethod(cfg.Method)
	res, err := fit.Fit(ctx, d, s.Energies, s.CountRates,
		fit.WithWeights(rateWeights(s)),
		fit.WithMethod(method),
		fit.WithLogger(logger.WithName("fit")))
	if err != nil {
		return nil, fit.Result{}, err
	}
	return d, res, nil
}

// rateWeights returns 1/variance per channel. Empty channels get the
// variance of a single count so that they still constrain the fit.
func rateWeights(s *ingest.Spectrum) []float64 {
	floor := uncertainty.RateVariance(1, s.LiveTime)
	w := s.RateVariances()
	for i, v := range w {
		w[i] = 1 / math.Max(v, floor)
	}
	return w
}

// seedSigma averages the widths estimated from the peak regions, falling
// back to two channel widths when none is usable.
func seedSigma(peaks []peak, width float64) float64 {
	var sum float64
	var n int
	for _, p := range peaks {
		if est := p.roi.SigmaEstimate(); !math.IsNaN(est) && est >= width/2 {
			sum += est
			n++
		}
	}
	if n == 0 {
		return 2 * width
	}
	return sum / float64(n)
}

func channelWidth(energies []float64) float64 {
	n := len(energies)
	if n < 2 || energies[n-1] == energies[0] {
		return 1
	}
	return math.Abs(energies[n-1]-energies[0]) / float64(n-1)
}

func printPeaks(w io.Writer, peaks []peak) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Energy\tChannel\tRate [1/s]\tStd [1/s]\tNet [1/s]\tNet Std\tFWHM\n")
	fmt.Fprintf(tw, "------\t-------\t----------\t---------\t---------\t-------\t----\n")
	for _, p := range peaks {
		fmt.Fprintf(tw, "%.2f\t%d\t%.4f\t%.4f\t%.4f\t%.4f\t%.2f\n",
			p.max.X,
			p.channel,
			p.max.Value,
			p.rateStd,
			p.roi.Net,
			p.netStd,
			p.roi.FWHM,
		)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing peak table: %w", err)
	}
	return nil
}

func printFit(w io.Writer, d *model.Decomposition, res fit.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "\nPeak\tCentroid\tFWHM\tArea\tArea Std\n")
	fmt.Fprintf(tw, "----\t--------\t----\t----\t--------\n")
	for i, p := range d.Peaks() {
		g, ok := p.(*model.Gaussian)
		if !ok {
			continue
		}
		areaStd := math.NaN()
		if v, err := fit.AreaVariance(res, d, i); err == nil {
			areaStd = math.Sqrt(v)
		}
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.4f\t%.4f\n", i+1, g.Centroid(), g.FWHM(), g.Area(), areaStd)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing fit table: %w", err)
	}

	_, err := fmt.Fprintf(w, "\nchi2/dof = %.4g (%d dof, %s, converged=%t)\n",
		res.ReducedChiSquare, res.DoF, res.Status, res.Converged)
	return err
}
