package model

import "errors"

// ErrDataFormat marks input that cannot be turned into a feature vector:
// malformed JSON, a missing or null column, or an unparseable timestamp.
var ErrDataFormat = errors.New("data format error")
