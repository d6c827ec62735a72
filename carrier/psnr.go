package carrier

import (
	"math"
)

// CalculatePSNR returns the peak signal-to-noise ratio in dB between the
// carrier bytes and the stego bytes, treating every byte as an 8-bit sample.
// Identical inputs give +Inf; inputs of different length give 0.
func CalculatePSNR(original, stego []byte) float64 {
	if len(original) != len(stego) {
		return 0.0
	}

	if len(original) == 0 {
		return 0.0
	}

	var mse float64
	for i := range original {
		diff := float64(original[i]) - float64(stego[i])
		mse += diff * diff
	}
	mse /= float64(len(original))

	if mse == 0 {
		return math.Inf(1)
	}

	// PSNR = 20 * log10(MAX / sqrt(MSE)), MAX = 255 for 8-bit samples
	maxSignalValue := 255.0
	return 20 * math.Log10(maxSignalValue/math.Sqrt(mse))
}
