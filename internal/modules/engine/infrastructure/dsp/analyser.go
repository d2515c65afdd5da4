package dsp

import (
	"math/cmplx"
	"sync"

	"github.com/mlvaren/tonic/internal/modules/engine/domain"
)

// analysisWindow is the number of mono samples held for analysis. Snapshots
// expose analysisWindow/2 magnitude bins.
const analysisWindow = 2048

// analyserNode is the analysis tap at the end of the chain. It keeps a ring
// of the most recent down-mixed samples; snapshots are computed on demand so
// the render loop never pays for the FFT.
type analyserNode struct {
	mu   sync.Mutex
	ring [analysisWindow]float64
	pos  int
}

func newAnalyserNode() *analyserNode {
	return &analyserNode{}
}

// observe records a processed block. Called from the render loop.
func (n *analyserNode) observe(buf []float64) {
	n.mu.Lock()
	for i := 0; i+1 < len(buf); i += 2 {
		n.ring[n.pos] = (buf[i] + buf[i+1]) / 2
		n.pos = (n.pos + 1) % analysisWindow
	}
	n.mu.Unlock()
}

// snapshot returns the current waveform (oldest first) and its Hann-windowed
// magnitude spectrum. It has no side effects on the ring.
func (n *analyserNode) snapshot() domain.Analysis {
	waveform := make([]float64, analysisWindow)
	n.mu.Lock()
	for i := 0; i < analysisWindow; i++ {
		waveform[i] = n.ring[(n.pos+i)%analysisWindow]
	}
	n.mu.Unlock()

	data := make([]complex128, analysisWindow)
	for i, s := range waveform {
		data[i] = complex(s*hann(i, analysisWindow), 0)
	}
	fft(data)

	frequency := make([]float64, analysisWindow/2)
	for i := range frequency {
		frequency[i] = cmplx.Abs(data[i]) / float64(analysisWindow)
	}

	return domain.Analysis{Frequency: frequency, Waveform: waveform}
}
