package opus

// PacketBandwidth returns the bandwidth a packet was encoded with, read from
// its TOC byte.
func PacketBandwidth(data []byte) (Bandwidth, error) {
	if len(data) == 0 {
		return 0, ErrBadArg
	}
	bw, err := packetBandwidth(data)
	if err != nil {
		return 0, err
	}
	return Bandwidth(bw), nil
}

// PacketSamplesPerFrame returns the number of samples per channel in each
// frame of the packet at the given sample rate.
func PacketSamplesPerFrame(data []byte, sampleRate int) (int, error) {
	if len(data) == 0 {
		return 0, ErrBadArg
	}
	return packetSamplesPerFrame(data, sampleRate), nil
}

// PacketFrames returns the number of Opus frames in a packet.
func PacketFrames(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, ErrBadArg
	}
	return packetFrames(data)
}

// PacketSamples returns the number of samples per channel in the packet.
func PacketSamples(data []byte, sampleRate int) (int, error) {
	frames, err := PacketFrames(data)
	if err != nil {
		return 0, err
	}
	spf, err := PacketSamplesPerFrame(data, sampleRate)
	if err != nil {
		return 0, err
	}
	return frames * spf, nil
}
