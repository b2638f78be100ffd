package io

import "errors"

// ErrPathOutsideBase is returned when a resolved path escapes its base directory.
var ErrPathOutsideBase = errors.New("invalid path: file is outside base directory")
