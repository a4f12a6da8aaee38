// Package inject presses and releases keys on the host.
package inject

import "errors"

var ErrUnsupported = errors.New("key injection not supported on this platform")
