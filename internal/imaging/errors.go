package imaging

import "errors"

var (
	ErrUnsupported = errors.New("unsupported image type")
	ErrEmptyCrop   = errors.New("crop rectangle is empty")
)
