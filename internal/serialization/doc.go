// Package serialization saves and loads parameter checkpoints in the
// SafeTensors format.
//
// A checkpoint is a state dictionary: a map from parameter names to vectors
// of float64 values, as produced by nn.MLP.StateDict. Only parameter values
// are stored; computation graphs are never serialized.
//
//	Format Structure:
//	  [8 bytes: Header Size (uint64 LE)]
//	  [Header: JSON, one entry per tensor plus "__metadata__"]
//	  [Tensor data: raw little-endian float64, sorted by name]
//
// Every tensor is written with dtype "F64" and a one-dimensional shape. The
// writer stores a SHA-256 checksum of the data section in the metadata under
// "sha256"; the reader verifies it when present.
//
// Example usage:
//
//	// Save a model
//	if err := serialization.WriteSafeTensors("model.safetensors", mlp.StateDict(), nil); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Load a model
//	state, _, err := serialization.ReadSafeTensors("model.safetensors")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := mlp.LoadStateDict(state); err != nil {
//	    log.Fatal(err)
//	}
package serialization
