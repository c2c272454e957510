package gameid

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	id := Generate()
	assert.Len(t, id, Length)
	assert.NoError(t, Validate(id))

	parsed, err := Decode(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestGenerateUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for range 200 {
		id := Generate()
		require.False(t, seen[id], "duplicate ID %s", id)
		seen[id] = true
	}
}

func TestGenerateTimeSorted(t *testing.T) {
	t.Parallel()

	var ids []string
	for range 5 {
		ids = append(ids, Generate())
		time.Sleep(2 * time.Millisecond)
	}
	for i := 1; i < len(ids); i++ {
		assert.Less(t, ids[i-1], ids[i])
	}
}

func TestEncodeKnownValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		id   uuid.UUID
		want string
	}{
		{"zero", uuid.UUID{}, "00000000000000000000000000"},
		{"max", allOnes(), "7zzzzzzzzzzzzzzzzzzzzzzzzz"},
		{"last bit", uuid.UUID{15: 1}, "00000000000000000000000001"},
		{"first bit", uuid.UUID{0: 0x80}, "40000000000000000000000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Encode(tt.id)
			assert.Equal(t, tt.want, got)

			back, err := Decode(got)
			require.NoError(t, err)
			assert.Equal(t, tt.id, back)
		})
	}
}

func allOnes() uuid.UUID {
	var id uuid.UUID
	for i := range id {
		id[i] = 0xff
	}
	return id
}

func TestDecodeRoundTripsRandom(t *testing.T) {
	t.Parallel()

	for range 50 {
		id := uuid.New()
		back, err := Decode(Encode(id))
		require.NoError(t, err)
		assert.Equal(t, id, back)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid", "01h5n0et5q6mt3v7ms1234abcd", false},
		{"too short", "01h5n0et5q6mt3v7ms123", true},
		{"too long", "01h5n0et5q6mt3v7ms1234abcdef", true},
		{"first char too high", "81h5n0et5q6mt3v7ms1234abcd", true},
		{"excluded letter", "01h5n0et5q6mt3v7ms1234abci", true},
		{"uppercase", "01H5N0ET5Q6MT3V7MS1234ABCD", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Validate(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
