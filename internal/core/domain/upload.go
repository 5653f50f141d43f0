package domain

import "errors"

var ErrNoFileAttached = errors.New("no file attached")
var ErrUnsupportedImageType = errors.New("unsupported image type")
