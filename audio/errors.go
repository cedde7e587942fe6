// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

// ErrInvalidDstSize reports a read buffer that cannot hold whole frames.
// Streams feeding the mixer must stay frame-aligned, or channels would
// drift against each other mid-block.
var ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
