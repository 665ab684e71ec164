package serialization

import (
	"bytes"
	"encoding/binary"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/born-ml/micrograd/internal/nn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodeRaw builds a stream from a hand-written JSON header and data section.
func encodeRaw(header string, data []byte) *bytes.Reader {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, uint64(len(header)))
	buf.WriteString(header)
	buf.Write(data)
	return bytes.NewReader(buf.Bytes())
}

func float64Bytes(vs ...float64) []byte {
	out := make([]byte, 8*len(vs))
	for i, v := range vs {
		binary.LittleEndian.PutUint64(out[i*8:], math.Float64bits(v))
	}
	return out
}

// TestSafeTensors_RoundTrip tests Encode followed by Decode.
func TestSafeTensors_RoundTrip(t *testing.T) {
	state := map[string][]float64{
		"layers.0.neurons.0.weight": {0.5, -0.25, math.Inf(1)},
		"layers.0.neurons.0.bias":   {1e-300},
		"empty":                     {},
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, state, map[string]string{"framework": "micrograd"}))

	got, metadata, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, state, got)
	assert.Equal(t, "micrograd", metadata["framework"])
	assert.Len(t, metadata[checksumKey], 64)
}

// TestSafeTensors_Layout tests the on-disk layout of a single tensor.
func TestSafeTensors_Layout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, map[string][]float64{"w": {1, 2}}, nil))

	raw := buf.Bytes()
	headerSize := binary.LittleEndian.Uint64(raw[:8])
	header := string(raw[8 : 8+headerSize])
	assert.Contains(t, header, `"w":{"dtype":"F64","shape":[2],"data_offsets":[0,16]}`)
	assert.Equal(t, float64Bytes(1, 2), raw[8+headerSize:])
}

// TestSafeTensors_File tests WriteSafeTensors and ReadSafeTensors.
func TestSafeTensors_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.safetensors")

	mlp := nn.NewMLP(3, []int{4, 4, 1}, nn.Uniform(rand.New(rand.NewSource(11))))
	require.NoError(t, WriteSafeTensors(path, mlp.StateDict(), nil))

	_, err := os.Stat(path)
	require.NoError(t, err)

	state, _, err := ReadSafeTensors(path)
	require.NoError(t, err)

	restored := nn.NewMLP(3, []int{4, 4, 1}, nn.Constant(0))
	require.NoError(t, restored.LoadStateDict(state))

	want, got := mlp.Parameters(), restored.Parameters()
	for i := range want {
		assert.Equal(t, want[i].Data(), got[i].Data())
	}
}

// TestReadSafeTensors_MissingFile tests the I/O error path.
func TestReadSafeTensors_MissingFile(t *testing.T) {
	_, _, err := ReadSafeTensors(filepath.Join(t.TempDir(), "missing.safetensors"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.False(t, IsCorrupt(err))
}

// TestDecode_Invalid tests rejection of malformed streams.
func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		header string
		data   []byte
		err    error
	}{
		{
			name:   "bad json",
			header: `{"w":`,
			err:    ErrInvalidHeader,
		},
		{
			name:   "dtype",
			header: `{"w":{"dtype":"F32","shape":[1],"data_offsets":[0,4]}}`,
			data:   []byte{0, 0, 0, 0},
			err:    ErrUnsupportedDType,
		},
		{
			name:   "two dimensions",
			header: `{"w":{"dtype":"F64","shape":[1,1],"data_offsets":[0,8]}}`,
			data:   float64Bytes(1),
			err:    ErrInvalidHeader,
		},
		{
			name:   "size mismatch",
			header: `{"w":{"dtype":"F64","shape":[2],"data_offsets":[0,8]}}`,
			data:   float64Bytes(1),
			err:    ErrInvalidHeader,
		},
		{
			name:   "out of bounds",
			header: `{"w":{"dtype":"F64","shape":[2],"data_offsets":[0,16]}}`,
			data:   float64Bytes(1),
			err:    ErrOutOfBounds,
		},
		{
			name:   "overlap",
			header: `{"a":{"dtype":"F64","shape":[2],"data_offsets":[0,16]},"b":{"dtype":"F64","shape":[1],"data_offsets":[8,16]}}`,
			data:   float64Bytes(1, 2),
			err:    ErrOffsetOverlap,
		},
		{
			name:   "reserved name",
			header: `{"__w":{"dtype":"F64","shape":[1],"data_offsets":[0,8]}}`,
			data:   float64Bytes(1),
			err:    ErrInvalidTensorName,
		},
		{
			name:   "checksum",
			header: `{"w":{"dtype":"F64","shape":[1],"data_offsets":[0,8]},"__metadata__":{"sha256":"00"}}`,
			data:   float64Bytes(1),
			err:    ErrChecksumMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(encodeRaw(tt.header, tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			assert.True(t, IsCorrupt(err))
		})
	}
}

// TestDecode_HeaderTooLarge tests the header size limit.
func TestDecode_HeaderTooLarge(t *testing.T) {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, uint64(MaxHeaderSize+1))

	_, _, err := Decode(&buf)
	assert.ErrorIs(t, err, ErrHeaderTooLarge)
}

// TestDecode_Truncated tests a stream cut inside the header.
func TestDecode_Truncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, map[string][]float64{"w": {1}}, nil))

	truncated := buf.Bytes()[:12]
	_, _, err := Decode(bytes.NewReader(truncated))
	require.Error(t, err)
	assert.False(t, IsCorrupt(err))
}

// TestEncode_InvalidName tests that the writer validates names.
func TestEncode_InvalidName(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, map[string][]float64{"": {1}}, nil)
	assert.ErrorIs(t, err, ErrInvalidTensorName)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "empty name")
}

// TestValidateChecksum tests checksum comparison.
func TestValidateChecksum(t *testing.T) {
	data := []byte("born")
	sum := ComputeChecksum(data)
	assert.NoError(t, ValidateChecksum(data, sum))
	assert.ErrorIs(t, ValidateChecksum([]byte("borm"), sum), ErrChecksumMismatch)
}
