package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/wjkennedy/jira-quake3/internal/domain"
)

func (s *TapeService) Load(path string) (*domain.Tape, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(bufio.NewReader(f))
}

// Read декодирует ленту из r
func Read(r io.Reader) (*domain.Tape, error) {
	// 1. Заголовок целиком
	var header TapeFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return nil, ErrBadMagic
	}
	if header.Version != Version2 {
		return nil, fmt.Errorf("%w: %d (expected %d)", ErrBadVersion, header.Version, Version2)
	}

	arena := make([]byte, header.ArenaLen)
	if _, err := io.ReadFull(r, arena); err != nil {
		return nil, fmt.Errorf("failed to read arena name: %w", err)
	}

	tape := &domain.Tape{
		Arena:     string(arena),
		Timestamp: header.Timestamp,
		Rules:     header.Rules,
	}

	// 2. Кадры. Емкость не доверяем заголовку: битый счетчик не должен выделять гигабайты.
	const maxPrealloc = 1 << 16
	tape.Frames = make([]domain.TapeFrame, 0, min(int(header.FrameCount), maxPrealloc))

	for i := 0; i < int(header.FrameCount); i++ {
		var rec FrameRecord
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("failed to read frame %d: %w", i, err)
		}
		tape.Frames = append(tape.Frames, decodeFrame(rec))
	}

	return tape, nil
}

func decodeFrame(rec FrameRecord) domain.TapeFrame {
	return domain.TapeFrame{
		Delta: rec.Delta,
		Reset: rec.Flags&flagReset != 0,
		Input: domain.Input{
			Forward:   rec.Flags&flagForward != 0,
			Backward:  rec.Flags&flagBackward != 0,
			TurnLeft:  rec.Flags&flagTurnLeft != 0,
			TurnRight: rec.Flags&flagTurnRight != 0,
			Fire:      int(rec.Fire),
			Weapon:    int(rec.Weapon),
		},
	}
}
