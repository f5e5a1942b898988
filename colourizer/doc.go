// Package colourizer implements a real-time audio colourization effect.
//
// The engine reshapes the spectral content of an incoming block with a
// parametric peaking biquad (or, optionally, a per-note filter bank),
// applies post-filter gain, and blends the result against the dry input.
// Two processing topologies are supported: Mono filters one downmixed
// signal and shares the wet result across all channels, Multi gives every
// channel its own independent filter state.
//
// Parameter changes may come from a control thread; they are published as
// an atomically swapped snapshot so Process never observes a torn update
// and never allocates, locks, or recomputes coefficients on the audio
// thread.
package colourizer
