package core

import "go.uber.org/atomic"

// CoreSampleRate is the rate the core produces stereo samples at.
const CoreSampleRate = 32768

// AudioResampler fills host audio buffers from a runner's core. It is safe to
// call Fill from an audio goroutine.
type AudioResampler struct {
	runner     *Runner
	lastSample atomic.Uint32
}

func NewAudioResampler(r *Runner) *AudioResampler {
	return &AudioResampler{runner: r}
}

// Fill writes len(buf) samples at the host rate. While the core is stopped
// the buffer repeats the last sample played.
func (a *AudioResampler) Fill(buf []uint32, rate int) {
	if len(buf) == 0 {
		return
	}
	if a.runner == nil || rate <= 0 {
		a.repeatLast(buf)
		return
	}
	c := a.runner.runningCore()
	if c == nil {
		a.repeatLast(buf)
		return
	}

	scaled := len(buf) * CoreSampleRate / rate
	if scaled <= 0 {
		a.repeatLast(buf)
		return
	}
	samples := c.Samples(scaled)
	if len(samples) == 0 {
		a.repeatLast(buf)
		return
	}

	a.lastSample.Store(samples[len(samples)-1])
	for i := range buf {
		buf[i] = samples[i*len(samples)/len(buf)]
	}
}

func (a *AudioResampler) repeatLast(buf []uint32) {
	last := a.lastSample.Load()
	for i := range buf {
		buf[i] = last
	}
}
