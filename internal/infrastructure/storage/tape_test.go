package storage

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wjkennedy/jira-quake3/internal/domain"
	"github.com/wjkennedy/jira-quake3/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Configure(io.Discard, "info", "text")
	os.Exit(m.Run())
}

func sampleTape() *domain.Tape {
	tape := &domain.Tape{Arena: "e1m1", Timestamp: 1760000000, Rules: domain.DefaultRules().Fingerprint()}
	tape.Record(1.0, domain.Input{Forward: true})
	tape.Record(0.98, domain.Input{TurnLeft: true, Fire: 2})
	tape.MarkReset()
	tape.Record(1.5, domain.Input{Backward: true, TurnRight: true, Weapon: 7})
	tape.Record(0, domain.Input{})
	return tape
}

func TestWriteRead(t *testing.T) {
	tape := sampleTape()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tape))

	// Заголовок 30 байт + имя + 12 байт на кадр
	assert.Equal(t, 30+len("e1m1")+12*5, buf.Len())

	got, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, tape, got)
	assert.True(t, got.Frames[2].Reset)
	assert.Equal(t, 4, got.Ticks())
	assert.Equal(t, domain.DefaultRules().Fingerprint(), got.Rules)
}

func TestRead_Errors(t *testing.T) {
	t.Run("bad magic", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, sampleTape()))
		data := buf.Bytes()
		copy(data, "CDRP")

		_, err := Read(bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrBadMagic)
	})

	t.Run("bad version", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, sampleTape()))
		data := buf.Bytes()
		binary.LittleEndian.PutUint32(data[4:8], 9)

		_, err := Read(bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrBadVersion)
	})

	t.Run("truncated frames", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, sampleTape()))
		data := buf.Bytes()

		_, err := Read(bytes.NewReader(data[:len(data)-5]))
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := Read(bytes.NewReader(nil))
		assert.ErrorIs(t, err, io.EOF)
	})
}

func TestWrite_RejectsOutOfRangeInput(t *testing.T) {
	tape := &domain.Tape{}
	tape.Record(1, domain.Input{Fire: -1})

	assert.Error(t, Write(io.Discard, tape))
}

func TestTapeService_SaveLoad(t *testing.T) {
	svc := NewTapeService(filepath.Join(t.TempDir(), "tapes"))
	tape := sampleTape()
	tape.Arena = "arenas/cross.txt"

	path, err := svc.Save(tape)
	require.NoError(t, err)
	assert.Equal(t, "tape_arenas_cross_txt_1760000000.rctp", filepath.Base(path))

	got, err := svc.Load(path)
	require.NoError(t, err)
	assert.Equal(t, tape, got)

	_, err = svc.Load(filepath.Join(t.TempDir(), "missing.rctp"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
