// SPDX-License-Identifier: EPL-2.0

package automix

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/automix/audio"
	"github.com/ik5/automix/engine"
	"github.com/ik5/automix/utils"
)

var (
	ErrNoSources      = errors.New("no sources to mix")
	ErrTooManySources = errors.New("too many sources for one engine")
)

// MixToMono16 is a high-level convenience function that auto-mixes a set
// of microphone recordings into a single mono 16-bit PCM program.
//
// The function builds one engine channel per source:
//  1. Each source is resampled to sampleRate and folded to mono
//  2. Blocks of blockSize samples stream through the gain-sharing engine
//  3. The gain-adjusted channels are summed into one program signal
//  4. The sum is collected as int16 PCM
//
// Sources that end early contribute silence until the longest one
// finishes, so multitrack session files of slightly different lengths
// line up. Each source is one microphone: multi-channel recordings are
// averaged down before mixing.
//
// Parameters:
//   - sources: one audio.Source per microphone (at most 32)
//   - sampleRate: session sample rate in Hz (e.g., 44100, 48000)
//   - blockSize: samples per engine block (e.g., 256); larger blocks
//     are cheaper, smaller blocks track talkers faster
//
// Returns the mixed PCM samples, the output sample rate (sampleRate),
// and any decode error. The caller still owns the sources and should
// close them.
//
// Example:
//
//	pcm16, rate, err := automix.MixToMono16(sources, 48000, 256)
//	if err != nil {
//	    // handle error
//	}
//	wav.WriteWAV16(out, rate, pcm16)
func MixToMono16(sources []audio.Source, sampleRate, blockSize int) ([]int16, int, error) {
	if len(sources) == 0 {
		return nil, sampleRate, ErrNoSources
	}
	if len(sources) > engine.MaxChannels {
		return nil, sampleRate, ErrTooManySources
	}
	if blockSize < 1 {
		blockSize = 1
	}
	if blockSize > engine.MaxBlockSize {
		blockSize = engine.MaxBlockSize
	}

	// Align every recording to the session rate, one mono stream per mic
	aligned := make([]audio.Source, len(sources))
	for i, src := range sources {
		s := src
		if s.SampleRate() != sampleRate {
			s = audio.NewResampler(s, sampleRate)
		}
		if s.Channels() != 1 {
			s = audio.NewMonoMixer(s)
		}
		aligned[i] = s
	}

	eng := engine.New(len(sources), float64(sampleRate), blockSize)

	buffers := make([][]float32, len(sources))
	for i := range buffers {
		buffers[i] = make([]float32, blockSize)
	}
	mix := make([]float32, blockSize)
	finished := make([]bool, len(sources))

	var pcm16 []int16
	for {
		anyData := false
		for i, src := range aligned {
			buf := buffers[i]
			clear(buf)
			if finished[i] {
				continue
			}

			n, err := readFull(src, buf)
			if n > 0 {
				anyData = true
			}
			if err == io.EOF {
				finished[i] = true
			} else if err != nil {
				return nil, sampleRate, fmt.Errorf("%w", err)
			}
		}
		if !anyData {
			break
		}

		eng.Process(buffers, blockSize)

		// Sum the gain-adjusted channels into the program signal
		for k := 0; k < blockSize; k++ {
			var sum float32
			for i := range buffers {
				sum += buffers[i][k]
			}
			mix[k] = sum
		}
		pcm16 = utils.AppendPCM16(pcm16, mix)
	}

	return pcm16, sampleRate, nil
}

// readFull reads from src until buf is full or the stream ends. Short
// reads are normal for streaming decoders, so keep asking.
func readFull(src audio.Source, buf []float32) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := src.ReadSamples(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			return total, io.EOF
		}
	}

	return total, nil
}
