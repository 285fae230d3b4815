package opus

/*
#cgo pkg-config: opus
#include <opus.h>

// opus_encoder_ctl is variadic and can not be called from Go directly.
// Every setter takes an opus_int32 and every getter an opus_int32 pointer,
// so two shims cover all requests used by this package.

static int
bridge_encoder_set_ctl(OpusEncoder *st, int request, opus_int32 value)
{
	return opus_encoder_ctl(st, request, value);
}

static int
bridge_encoder_get_ctl(OpusEncoder *st, int request, opus_int32 *value)
{
	return opus_encoder_ctl(st, request, value);
}
*/
import "C"

import (
	"unsafe"

	opus "gopkg.in/hraban/opus.v2"
)

// libopus request codes (opus_defines.h)
const (
	setBitrateRequest             = int32(C.OPUS_SET_BITRATE_REQUEST)
	getBitrateRequest             = int32(C.OPUS_GET_BITRATE_REQUEST)
	setComplexityRequest          = int32(C.OPUS_SET_COMPLEXITY_REQUEST)
	getComplexityRequest          = int32(C.OPUS_GET_COMPLEXITY_REQUEST)
	setSignalRequest              = int32(C.OPUS_SET_SIGNAL_REQUEST)
	getSignalRequest              = int32(C.OPUS_GET_SIGNAL_REQUEST)
	setPacketLossPercRequest      = int32(C.OPUS_SET_PACKET_LOSS_PERC_REQUEST)
	getPacketLossPercRequest      = int32(C.OPUS_GET_PACKET_LOSS_PERC_REQUEST)
	setInbandFECRequest           = int32(C.OPUS_SET_INBAND_FEC_REQUEST)
	getInbandFECRequest           = int32(C.OPUS_GET_INBAND_FEC_REQUEST)
	setBandwidthRequest           = int32(C.OPUS_SET_BANDWIDTH_REQUEST)
	getBandwidthRequest           = int32(C.OPUS_GET_BANDWIDTH_REQUEST)
	setMaxBandwidthRequest        = int32(C.OPUS_SET_MAX_BANDWIDTH_REQUEST)
	getMaxBandwidthRequest        = int32(C.OPUS_GET_MAX_BANDWIDTH_REQUEST)
	setExpertFrameDurationRequest = int32(C.OPUS_SET_EXPERT_FRAME_DURATION_REQUEST)
	getExpertFrameDurationRequest = int32(C.OPUS_GET_EXPERT_FRAME_DURATION_REQUEST)
	setLsbDepthRequest            = int32(C.OPUS_SET_LSB_DEPTH_REQUEST)
	getLsbDepthRequest            = int32(C.OPUS_GET_LSB_DEPTH_REQUEST)
)

// setRequests and getRequests list the requests the shims may forward.
// Passing a getter code to the setter shim (or vice versa) makes libopus
// read the wrong vararg type, so anything else is refused before cgo.
var setRequests = map[int32]bool{
	setBitrateRequest:             true,
	setComplexityRequest:          true,
	setSignalRequest:              true,
	setPacketLossPercRequest:      true,
	setInbandFECRequest:           true,
	setBandwidthRequest:           true,
	setMaxBandwidthRequest:        true,
	setExpertFrameDurationRequest: true,
	setLsbDepthRequest:            true,
}

var getRequests = map[int32]bool{
	getBitrateRequest:             true,
	getComplexityRequest:          true,
	getSignalRequest:              true,
	getPacketLossPercRequest:      true,
	getInbandFECRequest:           true,
	getBandwidthRequest:           true,
	getMaxBandwidthRequest:        true,
	getExpertFrameDurationRequest: true,
	getLsbDepthRequest:            true,
}

func libError(code C.int) error {
	if code == C.OPUS_OK {
		return nil
	}
	return opus.Error(int(code))
}

func encoderCreate(sampleRate, channels int, app Application) (*C.OpusEncoder, error) {
	var errno C.int
	st := C.opus_encoder_create(C.opus_int32(sampleRate), C.int(channels),
		C.int(app), &errno)
	if err := libError(errno); err != nil {
		return nil, err
	}
	return st, nil
}

func encoderDestroy(st *C.OpusEncoder) {
	C.opus_encoder_destroy(st)
}

func encoderSetCtl(st *C.OpusEncoder, request, value int32) error {
	return libError(C.bridge_encoder_set_ctl(st, C.int(request), C.opus_int32(value)))
}

func encoderGetCtl(st *C.OpusEncoder, request int32) (int32, error) {
	var value C.opus_int32
	if err := libError(C.bridge_encoder_get_ctl(st, C.int(request), &value)); err != nil {
		return 0, err
	}
	return int32(value), nil
}

func encodeInt16(st *C.OpusEncoder, pcm []int16, frameSize int, data []byte) (int, error) {
	n := C.opus_encode(st,
		(*C.opus_int16)(unsafe.Pointer(&pcm[0])),
		C.int(frameSize),
		(*C.uchar)(unsafe.Pointer(&data[0])),
		C.opus_int32(len(data)))
	if n < 0 {
		return 0, opus.Error(int(n))
	}
	return int(n), nil
}

func encodeFloat32(st *C.OpusEncoder, pcm []float32, frameSize int, data []byte) (int, error) {
	n := C.opus_encode_float(st,
		(*C.float)(unsafe.Pointer(&pcm[0])),
		C.int(frameSize),
		(*C.uchar)(unsafe.Pointer(&data[0])),
		C.opus_int32(len(data)))
	if n < 0 {
		return 0, opus.Error(int(n))
	}
	return int(n), nil
}

func packetBandwidth(data []byte) (int, error) {
	bw := C.opus_packet_get_bandwidth((*C.uchar)(unsafe.Pointer(&data[0])))
	if bw < 0 {
		return 0, libError(bw)
	}
	return int(bw), nil
}

func packetSamplesPerFrame(data []byte, sampleRate int) int {
	return int(C.opus_packet_get_samples_per_frame(
		(*C.uchar)(unsafe.Pointer(&data[0])), C.opus_int32(sampleRate)))
}

func packetFrames(data []byte) (int, error) {
	n := C.opus_packet_get_nb_frames(
		(*C.uchar)(unsafe.Pointer(&data[0])), C.opus_int32(len(data)))
	if n < 0 {
		return 0, libError(n)
	}
	return int(n), nil
}

// LibraryVersion returns the version string of the linked libopus.
func LibraryVersion() string {
	return C.GoString(C.opus_get_version_string())
}
