// Package reserved owns the `__T` placeholder used as the type parameter of
// generated blanket implementations.
//
// The Checker rejects user input that mentions the placeholder anywhere; the
// constructors build the placeholder nodes the generator splices into impls.
package reserved
