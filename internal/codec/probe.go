package codec

// Opus packet inspection from the TOC byte and frame count code,
// equivalent to libopus's opus_packet_get_nb_samples. Only the first one
// or two bytes of the payload are examined.

// samplesPerFrame returns the samples per channel a single frame carries
// at the given sample rate, derived from the TOC byte.
func samplesPerFrame(toc byte, sampleRate int) int {
	switch {
	case toc&0x80 != 0:
		// CELT-only: 2.5, 5, 10 or 20 ms
		shift := (toc >> 3) & 0x3
		return (sampleRate << shift) / 400
	case toc&0x60 == 0x60:
		// Hybrid: 10 or 20 ms
		if toc&0x08 != 0 {
			return sampleRate / 50
		}
		return sampleRate / 100
	default:
		// SILK-only: 10, 20, 40 or 60 ms
		size := (toc >> 3) & 0x3
		if size == 3 {
			return sampleRate * 60 / 1000
		}
		return (sampleRate << size) / 100
	}
}

// packetFrameCount returns the number of frames in the packet per the
// frame count code in the low two TOC bits.
func packetFrameCount(payload []byte) (int, error) {
	switch payload[0] & 0x3 {
	case 0:
		return 1, nil
	case 3:
		if len(payload) < 2 {
			return 0, ErrInvalidPacket
		}
		count := int(payload[1] & 0x3F)
		if count == 0 {
			return 0, ErrInvalidPacket
		}
		return count, nil
	default:
		return 2, nil
	}
}

// packetSampleCount reports the total samples per channel the packet
// declares at the given sample rate. Packets longer than 120 ms are
// invalid per the Opus framing rules.
func packetSampleCount(payload []byte, sampleRate int) (int, error) {
	if len(payload) == 0 {
		return 0, ErrEmptyPayload
	}
	frames, err := packetFrameCount(payload)
	if err != nil {
		return 0, err
	}
	samples := frames * samplesPerFrame(payload[0], sampleRate)
	if samples*25 > sampleRate*3 {
		return 0, ErrInvalidPacket
	}
	return samples, nil
}
