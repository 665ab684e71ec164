package serialization

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// ReadSafeTensors loads a state dictionary and its metadata from path.
func ReadSafeTensors(path string) (map[string][]float64, map[string]string, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	return Decode(file)
}

// Decode reads a SafeTensors stream written by Encode.
//
// Only one-dimensional F64 tensors are accepted. Offsets are validated
// against the data section and the checksum is verified when the metadata
// carries one.
func Decode(r io.Reader) (map[string][]float64, map[string]string, error) {
	var headerSize uint64
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, nil, fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize > MaxHeaderSize {
		return nil, nil, fmt.Errorf("%w: %d bytes", ErrHeaderTooLarge, headerSize)
	}

	headerJSON := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerJSON); err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(headerJSON, &raw); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}

	metadata := make(map[string]string)
	if m, ok := raw["__metadata__"]; ok {
		if err := json.Unmarshal(m, &metadata); err != nil {
			return nil, nil, fmt.Errorf("%w: metadata: %w", ErrInvalidHeader, err)
		}
		delete(raw, "__metadata__")
	}

	headers := make(map[string]SafeTensorHeader, len(raw))
	entries := make([]tensorEntry, 0, len(raw))
	for name, msg := range raw {
		if err := ValidateTensorName(name); err != nil {
			return nil, nil, err
		}
		var h SafeTensorHeader
		if err := json.Unmarshal(msg, &h); err != nil {
			return nil, nil, fmt.Errorf("%w: tensor %q: %w", ErrInvalidHeader, name, err)
		}
		if h.DType != dtypeF64 {
			return nil, nil, fmt.Errorf("%w: tensor %q has dtype %q", ErrUnsupportedDType, name, h.DType)
		}
		if len(h.Shape) != 1 || h.Shape[0] < 0 || h.Shape[0] > math.MaxInt64/8 {
			return nil, nil, fmt.Errorf("%w: tensor %q has shape %v, expected one dimension", ErrInvalidHeader, name, h.Shape)
		}
		size := h.DataOffsets[1] - h.DataOffsets[0]
		if size != h.Shape[0]*8 {
			return nil, nil, fmt.Errorf("%w: tensor %q spans %d bytes for %d elements", ErrInvalidHeader, name, size, h.Shape[0])
		}
		headers[name] = h
		entries = append(entries, tensorEntry{Name: name, Offset: h.DataOffsets[0], Size: size})
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read tensor data: %w", err)
	}
	if err := validateOffsets(entries, int64(len(data))); err != nil {
		return nil, nil, err
	}
	if stored, ok := metadata[checksumKey]; ok {
		if err := ValidateChecksum(data, stored); err != nil {
			return nil, nil, err
		}
	}

	state := make(map[string][]float64, len(headers))
	for name, h := range headers {
		chunk := data[h.DataOffsets[0]:h.DataOffsets[1]]
		values := make([]float64, h.Shape[0])
		for i := range values {
			values[i] = math.Float64frombits(binary.LittleEndian.Uint64(chunk[i*8:]))
		}
		state[name] = values
	}

	return state, metadata, nil
}

// IsCorrupt reports whether err indicates a malformed or tampered checkpoint,
// as opposed to an I/O failure.
func IsCorrupt(err error) bool {
	return errors.Is(err, ErrChecksumMismatch) ||
		errors.Is(err, ErrHeaderTooLarge) ||
		errors.Is(err, ErrInvalidHeader) ||
		errors.Is(err, ErrUnsupportedDType) ||
		errors.Is(err, ErrOutOfBounds) ||
		errors.Is(err, ErrOffsetOverlap) ||
		errors.Is(err, ErrInvalidTensorName) ||
		errors.Is(err, ErrTooManyTensors)
}
