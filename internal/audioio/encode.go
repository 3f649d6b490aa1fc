package audioio

import (
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-fx/dsp/dither"
)

const wavFormatPCM = 1

// WriteWAV writes clip to path as integer PCM with the given bit depth.
// Options configure the per-channel quantizers; without any, samples are
// rounded to the nearest code.
func WriteWAV(path string, clip *Clip, bits int, opts ...dither.Option) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()

	clipped, err := EncodeWAV(f, clip, bits, opts...)
	if err != nil {
		return err
	}

	entry := Logger.WithFields(logrus.Fields{
		"path":     path,
		"rate":     clip.SampleRate,
		"channels": len(clip.Channels),
		"frames":   clip.Frames(),
		"bits":     bits,
	})
	if clipped > 0 {
		entry.WithField("clipped", clipped).Warn("samples clipped to full scale")
	}
	entry.Debug("wrote output")

	return nil
}

// EncodeWAV writes clip as a PCM WAV stream and returns the number of
// samples that had to be clipped to full scale.
func EncodeWAV(w io.WriteSeeker, clip *Clip, bits int, opts ...dither.Option) (int, error) {
	if err := clip.validate(); err != nil {
		return 0, err
	}
	if _, err := fullScale(bits); err != nil {
		return 0, err
	}

	nch := len(clip.Channels)
	quant, err := dither.NewChannels(nch, bits, opts...)
	if err != nil {
		return 0, err
	}

	enc := wav.NewEncoder(w, clip.SampleRate, bits, nch, wavFormatPCM)

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: nch, SampleRate: clip.SampleRate},
		Data:           make([]int, 0, pcmChunk*nch),
		SourceBitDepth: bits,
	}

	clipped := 0
	frames := clip.Frames()
	for start := 0; start < frames; start += pcmChunk {
		end := min(start+pcmChunk, frames)

		buf.Data = buf.Data[:0]
		for i := start; i < end; i++ {
			for ch, samples := range clip.Channels {
				v, c := quant[ch].Quantize(samples[i])
				if c {
					clipped++
				}
				buf.Data = append(buf.Data, v)
			}
		}

		if err := enc.Write(buf); err != nil {
			return clipped, fmt.Errorf("write PCM: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return clipped, fmt.Errorf("finalize WAV: %w", err)
	}

	return clipped, nil
}
