// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/automix/utils"
)

// Resampler streams from src to the session sample rate using cubic
// interpolation, so every microphone recording reaches the mix at the
// rate the engine was built with. Channel count is preserved; a simple
// one-pole low-pass tames aliasing when downsampling.
type Resampler struct {
	src      Source
	dstRate  int
	channels int

	// step is how many source frames one output frame advances; pos is
	// the fractional position between window[1] and window[2].
	step float64
	pos  float64

	// Four consecutive source frames; window[1] and window[2] bracket
	// the current output position, window[0] and window[3] are the
	// spline support points.
	window [4][]float32
	have   [4]bool
	primed bool
	eof    bool

	frame []float32 // one-frame read buffer

	// anti-alias state, engaged only when downsampling
	lpState []float32
	lpAlpha float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		channels: channels,
		step:     float64(src.SampleRate()) / float64(dstRate),
		frame:    make([]float32, channels),
		lpState:  make([]float32, channels),
	}
	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	if r.step > 1 {
		// Downsampling folds energy above the target Nyquist back into
		// band; half-strength smoothing knocks the worst of it down
		r.lpAlpha = 0.5
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// prime loads the first three source frames into window[1..3], so the
// first output lands on source frame 0; window[0] stays empty until the
// first advance. A shorter stream is padded by repeating its final frame.
func (r *Resampler) prime() error {
	last := -1
	for i := 1; i < len(r.window); i++ {
		n, err := r.src.ReadSamples(r.frame)
		if n > 0 {
			copy(r.window[i], r.frame[:n])
			r.have[i] = true
			last = i
		}

		if err == io.EOF {
			r.eof = true
			if last < 0 {
				return io.EOF
			}
			for j := last + 1; j < len(r.window); j++ {
				copy(r.window[j], r.window[last])
				r.have[j] = true
			}
			break
		}
		if err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	// Seed the filter so downsampling has no warm-up transient
	if r.lpAlpha > 0 {
		copy(r.lpState, r.window[1])
	}

	r.primed = true

	return nil
}

// advance shifts the window one source frame forward, reading and
// filtering the next frame into window[3].
func (r *Resampler) advance() error {
	if r.eof {
		return io.EOF
	}

	copy(r.window[0], r.window[1])
	copy(r.window[1], r.window[2])
	copy(r.window[2], r.window[3])
	r.have[0], r.have[1], r.have[2] = r.have[1], r.have[2], r.have[3]

	n, err := r.src.ReadSamples(r.frame)
	if n > 0 {
		copy(r.window[3], r.frame[:n])
		r.have[3] = true

		if r.lpAlpha > 0 {
			w := r.window[3]
			for c := range w {
				w[c] = r.lpAlpha*w[c] + (1-r.lpAlpha)*r.lpState[c]
				r.lpState[c] = w[c]
			}
		}
	} else {
		r.have[3] = false
	}

	if err == io.EOF {
		r.eof = true
		if !r.have[3] {
			return io.EOF
		}
	} else if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// ReadSamples produces interleaved samples at the session rate. dst
// length must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		// Consume source frames until pos falls back into [0, 1)
		for r.pos >= 1 {
			r.pos--
			if err := r.advance(); err != nil {
				if err == io.EOF && written == 0 {
					return 0, io.EOF
				}
				if err == io.EOF {
					return written * r.channels, io.EOF
				}
				return written * r.channels, err
			}
		}

		if !r.have[1] || !r.have[2] {
			if written == 0 {
				return 0, io.EOF
			}
			return written * r.channels, io.EOF
		}

		x := float32(r.pos)
		base := written * r.channels
		for c := 0; c < r.channels; c++ {
			y0 := r.window[1][c]
			if r.have[0] {
				y0 = r.window[0][c]
			}
			y3 := r.window[2][c]
			if r.have[3] {
				y3 = r.window[3][c]
			}
			dst[base+c] = utils.CubicInterpolate(y0, r.window[1][c], r.window[2][c], y3, x)
		}

		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}
