package nn

import (
	"errors"
	"fmt"
	"sort"
)

// Errors returned by LoadStateDict.
var (
	ErrMissingParameter    = errors.New("missing parameter")
	ErrUnexpectedParameter = errors.New("unexpected parameter")
	ErrShapeMismatch       = errors.New("parameter shape mismatch")
)

func weightKey(layer, neuron int) string {
	return fmt.Sprintf("layers.%d.neurons.%d.weight", layer, neuron)
}

func biasKey(layer, neuron int) string {
	return fmt.Sprintf("layers.%d.neurons.%d.bias", layer, neuron)
}

// StateDict returns a snapshot of every parameter value.
//
// Keys are "layers.{l}.neurons.{n}.weight" (one entry per input) and
// "layers.{l}.neurons.{n}.bias" (a single entry).
func (m *MLP) StateDict() map[string][]float64 {
	state := make(map[string][]float64)
	for l, layer := range m.layers {
		for n, neuron := range layer.neurons {
			weights := make([]float64, len(neuron.weights))
			for i, w := range neuron.weights {
				weights[i] = w.Data()
			}
			state[weightKey(l, n)] = weights
			state[biasKey(l, n)] = []float64{neuron.bias.Data()}
		}
	}
	return state
}

// LoadStateDict overwrites parameter values from state.
//
// The state must describe exactly this architecture: every key present, no
// extra keys, matching lengths. Nothing is modified if validation fails.
func (m *MLP) LoadStateDict(state map[string][]float64) error {
	expected := make(map[string]int)
	for l, layer := range m.layers {
		for n, neuron := range layer.neurons {
			expected[weightKey(l, n)] = len(neuron.weights)
			expected[biasKey(l, n)] = 1
		}
	}

	keys := make([]string, 0, len(state))
	for key := range state {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		size, ok := expected[key]
		if !ok {
			return fmt.Errorf("load state dict: %w: %q", ErrUnexpectedParameter, key)
		}
		if len(state[key]) != size {
			return fmt.Errorf("load state dict: %w: %q has %d values, expected %d",
				ErrShapeMismatch, key, len(state[key]), size)
		}
	}
	if len(state) != len(expected) {
		for l, layer := range m.layers {
			for n := range layer.neurons {
				for _, key := range []string{weightKey(l, n), biasKey(l, n)} {
					if _, ok := state[key]; !ok {
						return fmt.Errorf("load state dict: %w: %q", ErrMissingParameter, key)
					}
				}
			}
		}
	}

	for l, layer := range m.layers {
		for n, neuron := range layer.neurons {
			for i, w := range state[weightKey(l, n)] {
				neuron.weights[i].SetData(w)
			}
			neuron.bias.SetData(state[biasKey(l, n)][0])
		}
	}
	return nil
}
