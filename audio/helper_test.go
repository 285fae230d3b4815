package audio

import (
	"reflect"
	"testing"
)

func TestAdjustChannels(t *testing.T) {

	mono := []float32{0.1, -0.2, 0.3}
	stereo := AdjustChannels(1, 2, mono)
	expStereo := []float32{0.1, 0.1, -0.2, -0.2, 0.3, 0.3}

	if !reflect.DeepEqual(stereo, expStereo) {
		t.Fatalf("mono -> stereo: got %v, expected %v", stereo, expStereo)
	}

	back := AdjustChannels(2, 1, stereo)
	if !reflect.DeepEqual(back, mono) {
		t.Fatalf("stereo -> mono: got %v, expected %v", back, mono)
	}

	same := AdjustChannels(2, 2, stereo)
	if !reflect.DeepEqual(same, stereo) {
		t.Fatal("equal channel count must not modify the frames")
	}
}

func TestToInt16(t *testing.T) {

	in := []float32{0, 0.5, -0.5, 1.5, -1.5}
	exp := []int16{0, 16384, -16384, 32767, -32768}

	res := ToInt16(in, make([]int16, 0, len(in)))
	if !reflect.DeepEqual(res, exp) {
		t.Fatalf("got %v, expected %v", res, exp)
	}
}
