// Package design derives biquad coefficients from filter parameters
// using the RBJ cookbook formulas.
//
// All designs validate their inputs and return an error wrapping
// ErrInvalidParameter instead of producing an unstable or silent filter.
package design
