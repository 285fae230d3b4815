package tone

import (
	"testing"

	"github.com/dh1tw/opusctl/audio/nodes/level"
)

func TestTone(t *testing.T) {

	tn := New(Frequency(1000), Amplitude(0.5), Samplerate(48000),
		Channels(2), FramesPerBuffer(480))

	msg, err := tn.Read()
	if err != nil {
		t.Fatal(err)
	}

	if msg.Frames != 480 || len(msg.Data) != 960 || msg.Channels != 2 {
		t.Fatalf("unexpected buffer: %d frames, %d samples, %d channels",
			msg.Frames, len(msg.Data), msg.Channels)
	}

	for i := 0; i < len(msg.Data); i += 2 {
		if msg.Data[i] != msg.Data[i+1] {
			t.Fatalf("channels differ at frame %d", i/2)
		}
		if msg.Data[i] > 0.5 || msg.Data[i] < -0.5 {
			t.Fatalf("sample %d exceeds amplitude: %v", i, msg.Data[i])
		}
	}

	// 480 frames at 48kHz contain exactly 10 periods of 1 kHz
	rms, err := level.RMS(msg.Data)
	if err != nil {
		t.Fatal(err)
	}
	if rms < 0.35 || rms > 0.36 {
		t.Fatalf("unexpected rms %v, expected ~0.354", rms)
	}
}
