package audioio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/sirupsen/logrus"
)

// Format names a supported container.
type Format string

const (
	FormatWAV    Format = "wav"
	FormatAIFF   Format = "aiff"
	FormatMP3    Format = "mp3"
	FormatVorbis Format = "ogg"
)

const (
	pcmChunk    = 4096
	mp3Channels = 2
)

// FormatFromPath picks a decoder from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return FormatWAV, nil
	case ".aif", ".aiff", ".aifc":
		return FormatAIFF, nil
	case ".mp3":
		return FormatMP3, nil
	case ".ogg", ".oga":
		return FormatVorbis, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Decode reads the whole file at path.
func Decode(path string) (*Clip, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = f.Close() }()

	clip, err := DecodeReader(f, format)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	Logger.WithFields(logrus.Fields{
		"path":     path,
		"format":   format,
		"rate":     clip.SampleRate,
		"channels": len(clip.Channels),
		"frames":   clip.Frames(),
		"bits":     clip.BitDepth,
	}).Debug("decoded input")

	return clip, nil
}

// DecodeReader decodes a complete stream of the given format. WAV and AIFF
// need to seek; other readers are buffered in memory first.
func DecodeReader(r io.Reader, format Format) (*Clip, error) {
	switch format {
	case FormatWAV, FormatAIFF:
		rs, err := asReadSeeker(r)
		if err != nil {
			return nil, err
		}
		if format == FormatWAV {
			return decodeWAV(rs)
		}

		return decodeAIFF(rs)
	case FormatMP3:
		return decodeMP3(r)
	case FormatVorbis:
		return decodeVorbis(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func asReadSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffer input: %w", err)
	}

	return bytes.NewReader(data), nil
}

// pcmReader is the part of the go-audio wav and aiff decoders used here.
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

func decodeWAV(rs io.ReadSeeker) (*Clip, error) {
	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a WAV file", ErrInvalidFile)
	}

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 {
		return nil, fmt.Errorf("%w: missing WAV format chunk", ErrInvalidFile)
	}

	return readPCM(dec, format, int(dec.BitDepth))
}

func decodeAIFF(rs io.ReadSeeker) (*Clip, error) {
	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not an AIFF file", ErrInvalidFile)
	}

	dec.ReadInfo()

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 {
		return nil, fmt.Errorf("%w: missing AIFF common chunk", ErrInvalidFile)
	}

	return readPCM(dec, format, int(dec.BitDepth))
}

func readPCM(dec pcmReader, format *goaudio.Format, bits int) (*Clip, error) {
	scale, err := fullScale(bits)
	if err != nil {
		return nil, err
	}

	clip := &Clip{
		SampleRate: format.SampleRate,
		BitDepth:   bits,
		Channels:   make([][]float64, format.NumChannels),
	}

	buf := &goaudio.IntBuffer{
		Format: format,
		Data:   make([]int, pcmChunk*format.NumChannels),
	}

	for {
		n, err := dec.PCMBuffer(buf)
		deinterleave(clip.Channels, buf.Data[:n], scale)

		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read PCM: %w", err)
		}
		if n == 0 || err != nil {
			break
		}
	}

	if clip.Frames() == 0 {
		return nil, ErrEmpty
	}

	return clip, nil
}

// decodeMP3 converts the 16-bit little-endian stereo stream of go-mp3.
func decodeMP3(r io.Reader) (*Clip, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	clip := &Clip{SampleRate: dec.SampleRate(), Channels: make([][]float64, mp3Channels)}
	raw := make([]byte, pcmChunk*2*mp3Channels)
	samples := make([]int, 0, pcmChunk*mp3Channels)

	for {
		n, err := io.ReadFull(dec, raw)
		samples = samples[:0]
		for i := 0; i+1 < n; i += 2 {
			samples = append(samples, int(int16(uint16(raw[i])|uint16(raw[i+1])<<8)))
		}
		deinterleave(clip.Channels, samples, 32768)

		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read MP3: %w", err)
		}
	}

	if clip.Frames() == 0 {
		return nil, ErrEmpty
	}

	return clip, nil
}

func decodeVorbis(r io.Reader) (*Clip, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	nch := dec.Channels()
	if nch <= 0 {
		return nil, fmt.Errorf("%w: %d Vorbis channels", ErrInvalidFile, nch)
	}

	clip := &Clip{SampleRate: dec.SampleRate(), Channels: make([][]float64, nch)}
	buf := make([]float32, pcmChunk*nch)

	for {
		// Read fills interleaved values; a trailing partial frame is dropped.
		n, err := dec.Read(buf)
		deinterleave(clip.Channels, buf[:n-n%nch], 1)

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read Vorbis: %w", err)
		}
		if n == 0 {
			break
		}
	}

	if clip.Frames() == 0 {
		return nil, ErrEmpty
	}

	return clip, nil
}
