package tui

import "errors"

// ErrAborted el usuario canceló la entrada (Ctrl+C).
var ErrAborted = errors.New("tui: aborted")
