// Package analysis computes frequency content of recorded traces, used to
// verify that the pulse oscillators land where the presets intend.
package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the one-sided power spectrum of data. The series is
// Hann-windowed and zero-padded to the next power of two.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}

	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	for i, v := range data {
		window := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(len(data)-1)))
		padded[i] = v * window
	}

	spectrum := fft.FFTReal(padded)
	ps := make([]float64, n/2)
	for i := range ps {
		mag := cmplx.Abs(spectrum[i])
		ps[i] = mag * mag
	}
	return ps
}

// DominantFrequency locates the strongest non-DC bin of a power spectrum and
// converts it to hertz given the sample interval dt. Returns 0 for empty or
// flat input.
func DominantFrequency(ps []float64, dt float64) float64 {
	if len(ps) < 2 || dt <= 0 {
		return 0
	}
	maxPower, maxIdx := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 {
		return 0
	}
	// len(ps) is half the padded FFT length.
	return float64(maxIdx) / (float64(2*len(ps)) * dt)
}
