package dsp

import "math"

// SineBurst generates n samples of a sine at freq Hz whose amplitude steps
// from quiet to loud halfway through, which makes compression visible.
func SineBurst(sampleRate int, freq float64, n int, quiet, loud float64) []float32 {
	buf := make([]float32, n)
	step := 2 * math.Pi * freq / float64(sampleRate)
	for i := range buf {
		amp := quiet
		if i >= n/2 {
			amp = loud
		}
		buf[i] = float32(amp * math.Sin(step*float64(i)))
	}
	return buf
}
