package adapter

import "errors"

// ErrRegistrarClosed is returned by Attach and Register after Close.
var ErrRegistrarClosed = errors.New("adapter: registrar is closed")
