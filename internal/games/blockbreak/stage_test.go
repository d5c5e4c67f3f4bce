package blockbreak

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageRoundTrip(t *testing.T) {
	var every Stage
	for r := 0; r < StageRows; r++ {
		for c := 0; c < StageCols; c++ {
			every.Cells[r][c] = Cell((r*StageCols + c) % int(cellCount))
		}
	}

	tests := []struct {
		name  string
		stage Stage
	}{
		{"empty", Stage{}},
		{"classic", classicStage},
		{"fortress", fortressStage},
		{"diamond", diamondStage()},
		{"every cell kind", every},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := tt.stage.Encode()
			assert.NotContains(t, code, "=")
			assert.NotContains(t, code, "+")
			assert.NotContains(t, code, "/")

			got, err := DecodeStage(code)
			require.NoError(t, err)
			assert.Equal(t, tt.stage, got)
		})
	}
}

func TestEncodeIsStable(t *testing.T) {
	a := MustParseStage("#D", "", "..X*")
	b := MustParseStage("#D", "", "..X*")
	assert.Equal(t, a.Encode(), b.Encode())
	assert.NotEqual(t, a.Encode(), Stage{}.Encode())
	assert.Len(t, a.Encode(), 51, "38 bytes of unpadded base64")
}

func TestDecodeStageRejectsBadInput(t *testing.T) {
	valid := classicStage.Encode()
	raw, err := base64.RawURLEncoding.DecodeString(valid)
	require.NoError(t, err)

	mutate := func(f func(b []byte)) string {
		b := append([]byte(nil), raw...)
		f(b)
		return base64.RawURLEncoding.EncodeToString(b)
	}

	tests := []struct {
		name string
		code string
	}{
		{"empty", ""},
		{"not base64", "!!!not a code!!!"},
		{"truncated", valid[:20]},
		{"too long", valid + "AAAA"},
		{"wrong version", mutate(func(b []byte) { b[0] = 9 })},
		{"flipped cell", mutate(func(b []byte) { b[5] ^= 0x01 })},
		{"bad checksum", mutate(func(b []byte) { b[len(b)-1] ^= 0xff })},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeStage(tt.code)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidStage), "got %v", err)
		})
	}
}

func TestDecodeStageRejectsUnknownCell(t *testing.T) {
	buf := make([]byte, stageWireSize)
	buf[0] = stageVersion
	buf[1] = 0xF0
	binary.BigEndian.PutUint16(buf[1+stagePacked:], uint16(crc32.ChecksumIEEE(buf[:1+stagePacked])))

	_, err := DecodeStage(base64.RawURLEncoding.EncodeToString(buf))
	require.ErrorIs(t, err, ErrInvalidStage)
	assert.Contains(t, err.Error(), "unknown cell")
}

func TestDecodeStageToleratesPaddingAndSpace(t *testing.T) {
	code := fortressStage.Encode()
	got, err := DecodeStage("  " + code + "==\n")
	require.NoError(t, err)
	assert.Equal(t, fortressStage, got)
}

func TestParseStage(t *testing.T) {
	s, err := ParseStage([]string{
		"#DHX*.",
		"  ",
		"d h x",
	})
	require.NoError(t, err)

	assert.Equal(t, CellNormal, s.At(0, 0))
	assert.Equal(t, CellDurable2, s.At(0, 1))
	assert.Equal(t, CellDurable3, s.At(0, 2))
	assert.Equal(t, CellSteel, s.At(0, 3))
	assert.Equal(t, CellExplosive, s.At(0, 4))
	assert.Equal(t, CellEmpty, s.At(0, 5))
	assert.Equal(t, CellDurable2, s.At(2, 0))
	assert.Equal(t, CellSteel, s.At(2, 4))
	assert.Equal(t, 8, s.Count())

	assert.Equal(t, "#DHX*.....", s.Lines()[0])
	assert.Equal(t, "D.H.X.....", s.Lines()[2])
	assert.Len(t, strings.Split(s.String(), "\n"), StageRows)
}

func TestParseStageErrors(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{"too many rows", make([]string, StageRows+1), "rows"},
		{"too many columns", []string{"###########"}, "columns"},
		{"unknown glyph", []string{"#?#"}, "unknown glyph"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStage(tt.lines)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestStageBounds(t *testing.T) {
	var s Stage
	s.Set(-1, 0, CellNormal)
	s.Set(0, StageCols, CellNormal)
	s.Set(0, 0, cellCount)
	assert.Zero(t, s.Count())
	assert.Equal(t, CellEmpty, s.At(StageRows, 0))
}

func TestClearable(t *testing.T) {
	assert.False(t, Stage{}.Clearable())
	assert.False(t, MustParseStage("XXX").Clearable())
	assert.True(t, MustParseStage("XX*").Clearable())
	assert.True(t, MustParseStage("", "D").Clearable())
}

func TestStageIsAValue(t *testing.T) {
	a := MustParseStage("##")
	b := a
	b.Set(0, 0, CellSteel)
	assert.Equal(t, CellNormal, a.At(0, 0))
}

func TestStageFile(t *testing.T) {
	data, err := MarshalStageFile("Fortress", fortressStage)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: Fortress")
	assert.Contains(t, string(data), "code: "+fortressStage.Encode())

	name, got, err := UnmarshalStageFile(data)
	require.NoError(t, err)
	assert.Equal(t, "Fortress", name)
	assert.Equal(t, fortressStage, got)
}

func TestStageFileVariants(t *testing.T) {
	name, s, err := UnmarshalStageFile([]byte("name: coded\ncode: " + classicStage.Encode() + "\n"))
	require.NoError(t, err)
	assert.Equal(t, "coded", name)
	assert.Equal(t, classicStage, s)

	_, s, err = UnmarshalStageFile([]byte("name: both\nrows: [\"*\"]\ncode: " + classicStage.Encode() + "\n"))
	require.NoError(t, err)
	assert.Equal(t, MustParseStage("*"), s, "rows win over the code")

	_, _, err = UnmarshalStageFile([]byte("name: nothing\n"))
	assert.Error(t, err)

	_, _, err = UnmarshalStageFile([]byte("name: bad\ncode: nope\n"))
	assert.ErrorIs(t, err, ErrInvalidStage)

	_, _, err = UnmarshalStageFile([]byte("rows: {"))
	assert.Error(t, err)
}
