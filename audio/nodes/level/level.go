package level

import (
	"fmt"
	"sync"

	"github.com/chewxy/math32"
	"github.com/dh1tw/opusctl/audio"
)

// Meter measures the level of the audio frames written to it. It keeps
// the overall RMS and the peak sample value.
type Meter struct {
	sync.Mutex
	sum   float64
	count int
	peak  float32
}

// New returns an empty level Meter.
func New() *Meter {
	return &Meter{}
}

// Write adds the frames of msg to the measurement.
func (m *Meter) Write(msg audio.Msg) error {
	m.Lock()
	defer m.Unlock()

	for _, el := range msg.Data {
		m.sum += float64(el * el)
		if a := math32.Abs(el); a > m.peak {
			m.peak = a
		}
	}
	m.count += len(msg.Data)
	return nil
}

// Close implements audio.Sink.
func (m *Meter) Close() error {
	return nil
}

// RMS returns the root mean square of all samples written so far.
func (m *Meter) RMS() float32 {
	m.Lock()
	defer m.Unlock()
	if m.count == 0 {
		return 0
	}
	return math32.Sqrt(float32(m.sum / float64(m.count)))
}

// Peak returns the largest absolute sample value written so far.
func (m *Meter) Peak() float32 {
	m.Lock()
	defer m.Unlock()
	return m.peak
}

// RMS calculates the root mean square for a non-interlaced audio
// frame
func RMS(data []float32) (float32, error) {

	var sum float32

	if len(data) == 0 {
		return sum, fmt.Errorf("empty slice provided")
	}

	for _, el := range data {
		sum = sum + el*el
	}

	sum = sum / float32(len(data))

	return math32.Sqrt(sum), nil
}

// DBFS converts a linear level into dB relative to full scale.
func DBFS(v float32) float32 {
	if v <= 0 {
		return math32.Inf(-1)
	}
	return 20 * math32.Log10(v)
}
