package opus

import (
	"errors"
	"testing"
)

func TestNewHandle(t *testing.T) {
	for _, sr := range []int{8000, 12000, 16000, 24000, 48000} {
		for _, chs := range []int{1, 2} {
			h, err := NewHandle(sr, chs, AppAudio)
			if err != nil {
				t.Fatalf("%d Hz / %d ch: %v", sr, chs, err)
			}
			if h.SampleRate() != sr || h.Channels() != chs || h.Application() != AppAudio {
				t.Fatalf("unexpected handle properties %d/%d/%v", h.SampleRate(), h.Channels(), h.Application())
			}
			h.Close()
		}
	}
}

func TestNewHandleInvalid(t *testing.T) {
	if _, err := NewHandle(44100, 1, AppVoIP); !errors.Is(err, ErrBadArg) {
		t.Fatalf("expected ErrBadArg for 44.1 kHz, got %v", err)
	}
	if _, err := NewHandle(48000, 3, AppVoIP); !errors.Is(err, ErrBadArg) {
		t.Fatalf("expected ErrBadArg for 3 channels, got %v", err)
	}
	if _, err := NewHandle(48000, 1, Application(1234)); !errors.Is(err, ErrBadArg) {
		t.Fatalf("expected ErrBadArg for unknown application, got %v", err)
	}
}

func TestHandleClose(t *testing.T) {
	h, err := NewHandle(48000, 1, AppVoIP)
	if err != nil {
		t.Fatal(err)
	}
	if !h.Valid() {
		t.Fatal("new handle not valid")
	}
	if err := h.Close(); err != nil {
		t.Fatal(err)
	}
	if h.Valid() {
		t.Fatal("closed handle still valid")
	}
	// closing twice must not free the encoder again
	if err := h.Close(); err != nil {
		t.Fatal(err)
	}

	if err := h.SetCtl(setBitrateRequest, 32000); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if _, err := h.Encode(make([]int16, 960), make([]byte, 100)); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestNilHandle(t *testing.T) {
	var h *Handle
	if h.Valid() {
		t.Fatal("nil handle reported as valid")
	}
	if err := h.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := h.GetCtl(getBitrateRequest); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestHandleRefusesUnknownRequests(t *testing.T) {
	h, err := NewHandle(48000, 1, AppVoIP)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	// a getter code on the setter path
	if err := h.SetCtl(getBitrateRequest, 0); !errors.Is(err, ErrUnimplemented) {
		t.Fatalf("expected ErrUnimplemented, got %v", err)
	}
	// OPUS_RESET_STATE takes no argument
	if _, err := h.GetCtl(4028); !errors.Is(err, ErrUnimplemented) {
		t.Fatalf("expected ErrUnimplemented, got %v", err)
	}
}

func TestHandleEncodeArgs(t *testing.T) {
	h, err := NewHandle(48000, 2, AppAudio)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	// odd number of samples for a stereo encoder
	if _, err := h.Encode(make([]int16, 961), make([]byte, 1000)); !errors.Is(err, ErrBadArg) {
		t.Fatalf("expected ErrBadArg, got %v", err)
	}
	if _, err := h.EncodeFloat32(nil, make([]byte, 1000)); !errors.Is(err, ErrBadArg) {
		t.Fatalf("expected ErrBadArg, got %v", err)
	}
	// 7ms is not a valid opus frame duration
	if _, err := h.Encode(make([]int16, 2*336), make([]byte, 1000)); !errors.Is(err, ErrBadArg) {
		t.Fatalf("expected ErrBadArg, got %v", err)
	}
}

func TestLibraryVersion(t *testing.T) {
	if v := LibraryVersion(); v == "" {
		t.Fatal("empty libopus version")
	}
}
