// Package biquad implements a single second-order IIR filter section
// (biquad) in Direct Form I.
//
// A Section owns the two most recent input and output samples for one
// channel stream. Coefficients are a0-normalized and may be swapped at
// runtime without disturbing the delay-line history, so live parameter
// changes produce no discontinuity beyond the filter's natural transient.
package biquad
