package schedule

import "errors"

// ErrLoopClosed is returned by Loop.Run after Close.
var ErrLoopClosed = errors.New("loop is closed")
