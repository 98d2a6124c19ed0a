// Package model implements the fixed dense classifier on top of gorgonia.
//
// The topology is described by an Architecture value rather than built ad hoc,
// so that the same description drives graph construction, training and the
// architecture.json file persisted next to the weights.
package model
