package feedback

import (
	"bytes"
	"context"
	"encoding/binary"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/hammamikhairi/tickface/internal/domain"
	"github.com/hammamikhairi/tickface/internal/logger"
)

// Audio parameters for the buzzer tone.
const (
	SampleRate       = 22050
	ChannelCount     = 1
	DefaultFrequency = 175 // Hz, low enough to read as a buzz
	amplitude        = 9000
)

// BuzzerOption configures the buzzer.
type BuzzerOption func(*Buzzer)

// WithFrequency sets the square-wave frequency in Hz.
func WithFrequency(hz int) BuzzerOption {
	return func(b *Buzzer) {
		if hz > 0 {
			b.freq = hz
		}
	}
}

// Compile-time interface check.
var _ domain.Actuator = (*Buzzer)(nil)

// Buzzer plays vibration patterns as a square-wave tone through the audio
// device. Vibrate never blocks: a pattern arriving while another plays is
// dropped, like a motor that is already running.
type Buzzer struct {
	ctx  *oto.Context
	log  *logger.Logger
	freq int

	requests chan domain.Pattern
	cache    map[time.Duration][]byte // keyed by pattern total

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
}

// NewBuzzer initializes the system audio context. Returns an error if the
// audio device is unavailable.
func NewBuzzer(log *logger.Logger, opts ...BuzzerOption) (*Buzzer, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	b := &Buzzer{
		ctx:      ctx,
		log:      log,
		freq:     DefaultFrequency,
		requests: make(chan domain.Pattern, 1),
		cache:    make(map[time.Duration][]byte),
	}
	for _, opt := range opts {
		opt(b)
	}
	log.Debug("buzzer initialized (rate=%d, freq=%dHz)", SampleRate, b.freq)
	return b, nil
}

// Start runs the playback worker. Non-blocking.
func (b *Buzzer) Start(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.running {
		return
	}
	childCtx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	b.running = true
	go b.run(childCtx)
}

// Stop halts the playback worker.
func (b *Buzzer) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.running {
		return
	}
	b.cancel()
	b.running = false
}

// Vibrate queues p for playback, or drops it if the buzzer is busy.
func (b *Buzzer) Vibrate(p domain.Pattern) {
	select {
	case b.requests <- p:
	default:
		b.log.Debug("buzzer busy, dropped %s pattern", p.Total())
	}
}

func (b *Buzzer) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case p := <-b.requests:
			if err := b.play(ctx, p); err != nil {
				b.log.Error("buzzer: %v", err)
			}
		}
	}
}

func (b *Buzzer) play(ctx context.Context, p domain.Pattern) error {
	pcm, ok := b.cache[p.Total()]
	if !ok {
		pcm = RenderPCM(p, SampleRate, b.freq)
		b.cache[p.Total()] = pcm
	}

	player := b.ctx.NewPlayer(bytes.NewReader(pcm))
	player.Play()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return player.Close()
		case <-time.After(10 * time.Millisecond):
		}
	}
	return player.Close()
}

// RenderPCM renders p as signed 16-bit little-endian mono PCM: a square
// wave at freq Hz during "on" segments, silence during "off" segments.
func RenderPCM(p domain.Pattern, rate, freq int) []byte {
	total := int(p.Total().Seconds() * float64(rate))
	out := make([]byte, 0, total*2)
	half := rate / (2 * freq)
	if half < 1 {
		half = 1
	}

	var sample [2]byte
	for i, seg := range p {
		n := int(seg.Seconds() * float64(rate))
		on := i%2 == 0
		for s := 0; s < n; s++ {
			var v int16
			if on {
				v = amplitude
				if (s/half)%2 == 1 {
					v = -amplitude
				}
			}
			binary.LittleEndian.PutUint16(sample[:], uint16(v))
			out = append(out, sample[:]...)
		}
	}
	return out
}
