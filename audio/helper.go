package audio

// AdjustChannels converts interleaved audio frames from iChs to oChs
// channels. Only mono and stereo are supported.
func AdjustChannels(iChs, oChs int, audioFrames []float32) []float32 {
	if iChs == oChs {
		return audioFrames
	}

	// mono -> stereo
	if iChs == 1 && oChs == 2 {
		res := make([]float32, 0, len(audioFrames)*2)
		// left channel = right channel
		for _, frame := range audioFrames {
			res = append(res, frame)
			res = append(res, frame)
		}
		return res
	}

	// stereo -> mono
	res := make([]float32, 0, len(audioFrames)/2)
	// chop off the right channel
	for i := 0; i < len(audioFrames); i += 2 {
		res = append(res, audioFrames[i])
	}
	return res
}

// AdjustVolume scales all audio frames by volume.
func AdjustVolume(volume float32, audioFrames []float32) {
	for i := 0; i < len(audioFrames); i++ {
		audioFrames[i] *= volume
	}
}

// ToInt16 converts float samples into 16 bit PCM, clipping at full scale.
func ToInt16(audioFrames []float32, pcm []int16) []int16 {
	pcm = pcm[:0]
	for _, f := range audioFrames {
		v := f * 32768
		switch {
		case v > 32767:
			v = 32767
		case v < -32768:
			v = -32768
		}
		pcm = append(pcm, int16(v))
	}
	return pcm
}
