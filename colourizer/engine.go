package colourizer

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-vecmath"

	"github.com/SuzukiDaishi/colourizer-go/dsp/filter/biquad"
	"github.com/SuzukiDaishi/colourizer-go/dsp/filter/design"
	"github.com/SuzukiDaishi/colourizer-go/dsp/filterbank"
)

// paramSnapshot is the immutable parameter view the audio thread works
// from. Control-thread mutations build a new snapshot and publish it with
// an atomic pointer swap; Process loads exactly one snapshot per block.
type paramSnapshot struct {
	generation uint64

	gain float64
	mix  float64
	mode ProcessingMode

	coeffs    biquad.Coefficients
	noteGains [filterbank.NoteCount]float64
}

// Engine is the colourizer orchestrator: it owns the current parameter
// values, the channel processor, and the dry/wet blend.
//
// Configure and the Set* methods may be called from a control thread
// while Process runs on the audio thread; Configure itself must complete
// before the next Process call is issued. Process neither locks nor
// allocates.
type Engine struct {
	mu  sync.Mutex // serializes control-thread mutations
	cfg engineConfig

	snap atomic.Pointer[paramSnapshot]

	// audio-side state, owned by Configure/Process
	sampleRate float64
	channels   int
	configured atomic.Bool

	proc    *channelProcessor
	monoBuf []float64
	wetBuf  []float64

	appliedGeneration uint64
	appliedMode       ProcessingMode
}

// NewEngine creates an unconfigured engine. Configure must be called
// before the first Process.
func NewEngine(opts ...Option) (*Engine, error) {
	cfg := defaultEngineConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	e := &Engine{cfg: cfg}
	e.snap.Store(&paramSnapshot{
		gain:      cfg.gain,
		mix:       cfg.mix,
		mode:      cfg.mode,
		noteGains: cfg.noteGains,
	})

	return e, nil
}

// Configure (re)builds the channel processor and coefficients for the
// given sample rate and channel count and moves the engine to Ready.
// It must be called before the first Process and again whenever sample
// rate or channel count changes. This is the only allocating operation;
// it always leaves all filter state zeroed.
func (e *Engine) Configure(sampleRate float64, channels int) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be > 0 and finite: %f", ErrInvalidParameter, sampleRate)
	}

	if channels <= 0 {
		return fmt.Errorf("%w: %d", ErrUnsupportedChannelCount, channels)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var coeffs biquad.Coefficients
	if !e.cfg.useBank {
		var err error
		coeffs, err = design.Peak(e.cfg.filterFreq, e.cfg.filterGainDB, e.cfg.filterQ, sampleRate)
		if err != nil {
			return err
		}
	}

	proc, err := newChannelProcessor(&e.cfg, coeffs, sampleRate, channels)
	if err != nil {
		return err
	}

	e.proc = proc
	e.sampleRate = sampleRate
	e.channels = channels
	e.monoBuf = make([]float64, e.cfg.maxBlockSize)
	e.wetBuf = make([]float64, e.cfg.maxBlockSize)

	next := e.publishLocked(func(s *paramSnapshot) {
		s.coeffs = coeffs
	})
	e.appliedGeneration = next.generation
	e.appliedMode = next.mode
	e.configured.Store(true)

	return nil
}

// Reset zeroes all filter state without touching parameters.
func (e *Engine) Reset() {
	if e.proc != nil {
		e.proc.reset()
	}
}

// Process filters one planar block in place: block[channel][sample].
// All channels must have equal length; any positive length works,
// including 1. The engine never retains the buffer after the call.
//
// Per frame the output is (1-mix)*dry + mix*(gain*filtered), so mix 0
// returns the dry input bit for bit and mix 1 returns gain*filtered
// exactly. Process never fails once configured with a matching block
// shape.
func (e *Engine) Process(block [][]float64) error {
	if !e.configured.Load() {
		return ErrNotConfigured
	}

	if len(block) != e.channels {
		return fmt.Errorf("%w: block has %d channels, configured for %d", ErrUnsupportedChannelCount, len(block), e.channels)
	}

	n := len(block[0])
	for _, ch := range block[1:] {
		if len(ch) != n {
			return fmt.Errorf("%w: ragged block: %d vs %d samples", ErrInvalidParameter, len(ch), n)
		}
	}

	snap := e.snap.Load()
	if snap.generation != e.appliedGeneration {
		e.applySnapshot(snap)
	}

	for off := 0; off < n; off += len(e.wetBuf) {
		end := off + len(e.wetBuf)
		if end > n {
			end = n
		}
		e.processChunk(block, off, end, snap)
	}

	return nil
}

// applySnapshot pushes a freshly observed snapshot into the filter units
// before any sample of the block is touched. Coefficient swaps therefore
// never happen mid-block.
func (e *Engine) applySnapshot(snap *paramSnapshot) {
	e.proc.setCoefficients(snap.coeffs)
	e.proc.setNoteGains(snap.noteGains)

	if snap.mode != e.appliedMode {
		// Stale cross-mode state must never leak into the new topology.
		e.proc.reset()
		e.appliedMode = snap.mode
	}

	e.appliedGeneration = snap.generation
}

func (e *Engine) processChunk(block [][]float64, off, end int, snap *paramSnapshot) {
	m := end - off
	wet := e.wetBuf[:m]

	if snap.mode == ModeMono {
		mono := e.monoBuf[:m]
		e.downmixInto(mono, block, off, end)
		e.proc.mono.ProcessBlockTo(wet, mono)

		switch {
		case snap.mix == 0:
			// Dry output; the filter state still advanced above.
		case snap.mix == 1:
			vecmath.ScaleBlock(wet, wet, snap.gain)
			for _, ch := range block {
				copy(ch[off:end], wet)
			}
		default:
			vecmath.ScaleBlock(wet, wet, snap.mix*snap.gain)
			for _, ch := range block {
				seg := ch[off:end]
				vecmath.ScaleBlock(seg, seg, 1-snap.mix)
				vecmath.AddBlockInPlace(seg, wet)
			}
		}

		return
	}

	for c, ch := range block {
		seg := ch[off:end]
		e.proc.multi[c].ProcessBlockTo(wet, seg)

		switch {
		case snap.mix == 0:
		case snap.mix == 1:
			vecmath.ScaleBlock(seg, wet, snap.gain)
		default:
			vecmath.ScaleBlock(wet, wet, snap.mix*snap.gain)
			vecmath.ScaleBlock(seg, seg, 1-snap.mix)
			vecmath.AddBlockInPlace(seg, wet)
		}
	}
}

func (e *Engine) downmixInto(dst []float64, block [][]float64, off, end int) {
	copy(dst, block[0][off:end])
	if e.cfg.downmix == DownmixFirstChannel || len(block) == 1 {
		return
	}

	for _, ch := range block[1:] {
		vecmath.AddBlockInPlace(dst, ch[off:end])
	}
	vecmath.ScaleBlock(dst, dst, 1/float64(len(block)))
}

// publishLocked clones the current snapshot, applies mutate, bumps the
// generation, and swaps it in. Callers must hold e.mu.
func (e *Engine) publishLocked(mutate func(*paramSnapshot)) *paramSnapshot {
	cur := e.snap.Load()
	next := *cur
	mutate(&next)
	next.generation = cur.generation + 1
	e.snap.Store(&next)

	return &next
}

// SetGain sets the post-filter linear gain.
func (e *Engine) SetGain(gain float64) error {
	if gain < 0 || math.IsNaN(gain) || math.IsInf(gain, 0) {
		return fmt.Errorf("%w: gain must be >= 0 and finite: %f", ErrInvalidParameter, gain)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.publishLocked(func(s *paramSnapshot) { s.gain = gain })

	return nil
}

// SetMix sets the dry/wet blend in [0, 1].
func (e *Engine) SetMix(mix float64) error {
	if mix < 0 || mix > 1 || math.IsNaN(mix) {
		return fmt.Errorf("%w: mix must be in [0, 1]: %f", ErrInvalidParameter, mix)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.publishLocked(func(s *paramSnapshot) { s.mix = mix })

	return nil
}

// SetMode selects the filter topology. A mode change invalidates all
// filter state before the next block is processed.
func (e *Engine) SetMode(mode ProcessingMode) error {
	if !mode.valid() {
		return fmt.Errorf("%w: processing mode %d", ErrInvalidParameter, int(mode))
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.publishLocked(func(s *paramSnapshot) { s.mode = mode })

	return nil
}

// SetFilter reshapes the peaking filter. When the engine is configured
// the new coefficients are derived immediately and validated against the
// current sample rate; otherwise they take effect at Configure time.
func (e *Engine) SetFilter(freqHz, q, gainDB float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.configured.Load() || e.cfg.useBank {
		if freqHz <= 0 || math.IsNaN(freqHz) || math.IsInf(freqHz, 0) {
			return fmt.Errorf("%w: filter frequency must be > 0 and finite: %f", ErrInvalidParameter, freqHz)
		}
		if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
			return fmt.Errorf("%w: filter q must be > 0 and finite: %f", ErrInvalidParameter, q)
		}
		if math.IsNaN(gainDB) || math.IsInf(gainDB, 0) {
			return fmt.Errorf("%w: filter gain must be finite: %f", ErrInvalidParameter, gainDB)
		}

		e.cfg.filterFreq, e.cfg.filterQ, e.cfg.filterGainDB = freqHz, q, gainDB

		return nil
	}

	coeffs, err := design.Peak(freqHz, gainDB, q, e.sampleRate)
	if err != nil {
		return err
	}

	e.cfg.filterFreq, e.cfg.filterQ, e.cfg.filterGainDB = freqHz, q, gainDB
	e.publishLocked(func(s *paramSnapshot) { s.coeffs = coeffs })

	return nil
}

// SetNoteGains replaces all 12 pitch-class gains of the note bank.
func (e *Engine) SetNoteGains(gains [filterbank.NoteCount]float64) error {
	for i, g := range gains {
		if g < 0 || g > 1 || math.IsNaN(g) || math.IsInf(g, 0) {
			return fmt.Errorf("%w: note gain %s must be in [0, 1]: %f", ErrInvalidParameter, filterbank.NoteName(i), g)
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.publishLocked(func(s *paramSnapshot) { s.noteGains = gains })

	return nil
}

// Gain returns the post-filter linear gain.
func (e *Engine) Gain() float64 { return e.snap.Load().gain }

// Mix returns the dry/wet blend.
func (e *Engine) Mix() float64 { return e.snap.Load().mix }

// Mode returns the active processing mode.
func (e *Engine) Mode() ProcessingMode { return e.snap.Load().mode }

// NoteGains returns the pitch-class gains of the note bank.
func (e *Engine) NoteGains() [filterbank.NoteCount]float64 { return e.snap.Load().noteGains }

// Coefficients returns the active peaking coefficients. The zero value is
// returned before Configure or when the note bank is active.
func (e *Engine) Coefficients() biquad.Coefficients { return e.snap.Load().coeffs }

// Configured reports whether Configure has completed successfully.
func (e *Engine) Configured() bool { return e.configured.Load() }

// SampleRate returns the configured sample rate (0 while unconfigured).
func (e *Engine) SampleRate() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.sampleRate
}

// Channels returns the configured channel count (0 while unconfigured).
func (e *Engine) Channels() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.channels
}

// Downmix returns the Mono-mode downmix policy.
func (e *Engine) Downmix() DownmixPolicy { return e.cfg.downmix }

// FilterFrequency returns the peaking filter center frequency in Hz.
func (e *Engine) FilterFrequency() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.cfg.filterFreq
}

// FilterQ returns the peaking filter quality factor.
func (e *Engine) FilterQ() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.cfg.filterQ
}

// FilterGainDB returns the peaking filter gain in dB.
func (e *Engine) FilterGainDB() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.cfg.filterGainDB
}
