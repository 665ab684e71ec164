// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package serialization saves and loads parameter checkpoints in the
// SafeTensors format.
//
// Example:
//
//	if err := serialization.WriteSafeTensors("model.safetensors", mlp.StateDict(), nil); err != nil {
//	    log.Fatal(err)
//	}
//
//	state, _, err := serialization.ReadSafeTensors("model.safetensors")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := mlp.LoadStateDict(state); err != nil {
//	    log.Fatal(err)
//	}
package serialization

import (
	"io"

	"github.com/born-ml/micrograd/internal/serialization"
)

// Errors reported for malformed checkpoints.
var (
	ErrChecksumMismatch  = serialization.ErrChecksumMismatch
	ErrHeaderTooLarge    = serialization.ErrHeaderTooLarge
	ErrInvalidHeader     = serialization.ErrInvalidHeader
	ErrUnsupportedDType  = serialization.ErrUnsupportedDType
	ErrOutOfBounds       = serialization.ErrOutOfBounds
	ErrOffsetOverlap     = serialization.ErrOffsetOverlap
	ErrInvalidTensorName = serialization.ErrInvalidTensorName
	ErrTooManyTensors    = serialization.ErrTooManyTensors
)

// ValidationError provides detailed information about validation failures.
type ValidationError = serialization.ValidationError

// WriteSafeTensors writes a state dictionary to a SafeTensors file at path.
func WriteSafeTensors(path string, state map[string][]float64, metadata map[string]string) error {
	return serialization.WriteSafeTensors(path, state, metadata)
}

// ReadSafeTensors loads a state dictionary and its metadata from path.
func ReadSafeTensors(path string) (map[string][]float64, map[string]string, error) {
	return serialization.ReadSafeTensors(path)
}

// Encode writes a state dictionary to w in SafeTensors format.
func Encode(w io.Writer, state map[string][]float64, metadata map[string]string) error {
	return serialization.Encode(w, state, metadata)
}

// Decode reads a SafeTensors stream written by Encode.
func Decode(r io.Reader) (map[string][]float64, map[string]string, error) {
	return serialization.Decode(r)
}

// IsCorrupt reports whether err indicates a malformed or tampered checkpoint.
func IsCorrupt(err error) bool {
	return serialization.IsCorrupt(err)
}
