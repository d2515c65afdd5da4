package dsp

import "math"

// fft computes an in-place iterative radix-2 Cooley-Tukey transform.
// len(data) must be a power of two.
func fft(data []complex128) {
	n := len(data)
	if n <= 1 {
		return
	}

	// Bit-reversal permutation.
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			data[i], data[j] = data[j], data[i]
		}
	}

	for length := 2; length <= n; length <<= 1 {
		angle := -2 * math.Pi / float64(length)
		wl := complex(math.Cos(angle), math.Sin(angle))
		for start := 0; start < n; start += length {
			w := complex(1, 0)
			for k := 0; k < length/2; k++ {
				even := data[start+k]
				odd := data[start+k+length/2] * w
				data[start+k] = even + odd
				data[start+k+length/2] = even - odd
				w *= wl
			}
		}
	}
}

// hann returns the Hann window coefficient for position i of n.
func hann(i, n int) float64 {
	return 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
}
