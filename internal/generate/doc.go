// Package generate lowers parsed trait aliases into a trait definition plus
// a blanket implementation for every type satisfying the alias bounds.
//
// Generation is a pure function of one item. It assumes the collection was
// already checked by reserved.Checker: nothing here can fail.
package generate
