package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform with the radix-2
// Cooley-Tukey recursion. The input length must be a power of two;
// use [PadPow2] to prepare arbitrary trajectories.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

// PowerSpectrum returns the magnitude of the first half of the FFT,
// one bin per frequency up to Nyquist.
func PowerSpectrum(data []float64) []float64 {
	fft := FFT(data)
	ps := make([]float64, len(fft)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}

	return ps
}

// PadPow2 zero-pads a trajectory to the next power-of-two length.
func PadPow2(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)
	return padded
}

// DominantFrequency locates the strongest non-constant spectral
// component of a [PowerSpectrum] over samples spaced dt apart. The
// constant bin is skipped. Returns 0, 0 when the spectrum is too short
// or carries no signal.
func DominantFrequency(ps []float64, dt float64) (hz, power float64) {
	if len(ps) < 2 || dt <= 0 {
		return 0, 0
	}

	maxIdx := 1
	for i := 1; i < len(ps); i++ {
		if ps[i] > ps[maxIdx] {
			maxIdx = i
		}
	}
	if ps[maxIdx] == 0 {
		return 0, 0
	}

	n := 2 * len(ps)
	return float64(maxIdx) / (float64(n) * dt), ps[maxIdx]
}
