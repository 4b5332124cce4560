package ocr

import "errors"

// ErrNoAmount is returned when no plausible monetary amount can be extracted.
var ErrNoAmount = errors.New("no amount detected")

// ErrUnreadable is returned when every OCR pass failed on the image.
var ErrUnreadable = errors.New("image unreadable")
