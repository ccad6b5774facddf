package sdlhost

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
)

const (
	audioRate    = 48000
	audioSamples = 1024
	// Keep about two buffers queued so the device never starves.
	audioQueueBytes = audioSamples * 4 * 2
)

// Filler produces interleaved stereo S16 frames packed one per uint32.
type Filler interface {
	Fill(buf []uint32, rate int)
}

// Audio queues samples from a Filler onto an SDL output device.
type Audio struct {
	device sdl.AudioDeviceID
	rate   int
	filler Filler
	logger *slog.Logger
}

func OpenAudio(filler Filler, logger *slog.Logger) (*Audio, error) {
	desired := sdl.AudioSpec{
		Freq:     audioRate,
		Format:   sdl.AUDIO_S16LSB,
		Channels: 2,
		Samples:  audioSamples,
	}
	var obtained sdl.AudioSpec
	device, err := sdl.OpenAudioDevice("", false, &desired, &obtained, 0)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	logger.Debug("Opened audio device", "rate", obtained.Freq, "samples", obtained.Samples)
	return &Audio{device: device, rate: int(obtained.Freq), filler: filler, logger: logger}, nil
}

// Run keeps the device queue topped up until ctx is done.
func (a *Audio) Run(ctx context.Context) error {
	buf := make([]uint32, audioSamples)
	sdl.PauseAudioDevice(a.device, false)
	defer sdl.PauseAudioDevice(a.device, true)

	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			sdl.ClearQueuedAudio(a.device)
			return nil
		case <-ticker.C:
		}

		for sdl.GetQueuedAudioSize(a.device) < audioQueueBytes {
			a.filler.Fill(buf, a.rate)
			data := unsafe.Slice((*byte)(unsafe.Pointer(&buf[0])), len(buf)*4)
			if err := sdl.QueueAudio(a.device, data); err != nil {
				return fmt.Errorf("queue audio: %w", err)
			}
		}
	}
}

func (a *Audio) Close() {
	sdl.CloseAudioDevice(a.device)
}
