package audioio

import "errors"

var (
	// ErrUnsupportedFormat is returned for file extensions with no decoder.
	ErrUnsupportedFormat = errors.New("audioio: unsupported format")

	// ErrInvalidFile is returned when the container header is not recognised.
	ErrInvalidFile = errors.New("audioio: invalid file")

	// ErrBitDepth is returned for PCM bit depths other than 16, 24 and 32.
	ErrBitDepth = errors.New("audioio: unsupported bit depth")

	// ErrEmpty is returned for clips without channels or frames.
	ErrEmpty = errors.New("audioio: empty clip")
)
