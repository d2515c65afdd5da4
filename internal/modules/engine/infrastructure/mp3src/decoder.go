package mp3src

import (
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/go-mp3"

	"github.com/mlvaren/tonic/internal/modules/engine/infrastructure/dsp"
)

// Decode reads an entire MP3 stream into a PCM source. go-mp3 always emits
// 16-bit stereo little-endian frames at the stream's native rate.
func Decode(id string, r io.Reader) (*dsp.PCMSource, error) {
	decoder, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open mp3 stream: %w", err)
	}

	samples := make([]float64, 0, 2*44100)
	buf := make([]byte, 4096)
	for {
		n, err := decoder.Read(buf)
		if n > 0 {
			for i := 0; i+1 < n; i += 2 {
				sample := int16(buf[i]) | int16(buf[i+1])<<8
				samples = append(samples, float64(sample)/32768.0)
			}
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("failed to decode mp3 stream: %w", err)
		}
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("mp3 stream %q contains no samples", id)
	}

	return dsp.NewPCMSource(id, decoder.SampleRate(), samples), nil
}

// DecodeFile decodes the MP3 at path, keyed by the path itself.
func DecodeFile(path string) (*dsp.PCMSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return Decode(path, f)
}
