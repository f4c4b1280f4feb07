package storage

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/wjkennedy/jira-quake3/internal/domain"
	"github.com/wjkennedy/jira-quake3/pkg/logger"
)

const (
	MagicHeader string = `RCTP` // 4 байта
	Version2    uint32 = 2      // v2: отпечаток правил и маркеры сброса

	Extension = ".rctp"
)

var (
	ErrBadMagic   = errors.New("not a tape file")
	ErrBadVersion = errors.New("unsupported tape version")
)

// TapeFileHeader - точное представление заголовка файла.
// binary.Write пишет его целиком: только массивы и числа.
type TapeFileHeader struct {
	Magic      [4]byte // 4 байта
	Version    uint32  // 4 байта
	Timestamp  int64   // 8 байт
	Rules      uint64  // 8 байт, Rules.Fingerprint
	FrameCount uint32  // 4 байта
	ArenaLen   uint16  // 2 байта, далее имя арены
}

// FrameRecord - один тик ленты
type FrameRecord struct {
	Delta  float64 // 8
	Flags  uint8   // 1, удерживаемые клавиши и сброс
	Weapon uint8   // 1
	Fire   uint16  // 2
}

// Биты удерживаемых клавиш
const (
	flagForward uint8 = 1 << iota
	flagBackward
	flagTurnLeft
	flagTurnRight
	flagReset
)

type TapeService struct {
	SaveDir string
}

func NewTapeService(dir string) *TapeService {
	return &TapeService{SaveDir: dir}
}

// Save пишет ленту в SaveDir и возвращает путь к файлу
func (s *TapeService) Save(tape *domain.Tape) (string, error) {
	if err := os.MkdirAll(s.SaveDir, 0o755); err != nil {
		return "", fmt.Errorf("create tape dir: %w", err)
	}

	arena := strings.NewReplacer("/", "_", "\\", "_", ".", "_").Replace(tape.Arena)
	filename := fmt.Sprintf("tape_%s_%d%s", arena, tape.Timestamp, Extension)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	// Кадров много, пишем через буфер
	bw := bufio.NewWriter(f)
	if err := Write(bw, tape); err != nil {
		return "", err
	}
	if err := bw.Flush(); err != nil {
		return "", err
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "tape",
		"path":      path,
		"frames":    len(tape.Frames),
	}).Info("Tape saved")
	return path, nil
}

// Write кодирует ленту в w
func Write(w io.Writer, t *domain.Tape) error {
	arena := []byte(t.Arena)
	if len(arena) > math.MaxUint16 {
		return fmt.Errorf("arena name too long: %d", len(arena))
	}
	if uint64(len(t.Frames)) > math.MaxUint32 {
		return fmt.Errorf("too many frames: %d", len(t.Frames))
	}

	// 1. Заголовок
	header := TapeFileHeader{
		Version:    Version2,
		Timestamp:  t.Timestamp,
		Rules:      t.Rules,
		FrameCount: uint32(len(t.Frames)),
		ArenaLen:   uint16(len(arena)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(arena); err != nil {
		return err
	}

	// 2. Кадры
	for i, fr := range t.Frames {
		rec, err := encodeFrame(fr)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		if err := binary.Write(w, binary.LittleEndian, &rec); err != nil {
			return err
		}
	}

	return nil
}

func encodeFrame(fr domain.TapeFrame) (FrameRecord, error) {
	in := fr.Input
	if in.Fire < 0 || in.Fire > math.MaxUint16 {
		return FrameRecord{}, fmt.Errorf("fire count out of range: %d", in.Fire)
	}
	if in.Weapon < 0 || in.Weapon > math.MaxUint8 {
		return FrameRecord{}, fmt.Errorf("weapon out of range: %d", in.Weapon)
	}

	var flags uint8
	if in.Forward {
		flags |= flagForward
	}
	if in.Backward {
		flags |= flagBackward
	}
	if in.TurnLeft {
		flags |= flagTurnLeft
	}
	if in.TurnRight {
		flags |= flagTurnRight
	}
	if fr.Reset {
		flags |= flagReset
	}

	return FrameRecord{
		Delta:  fr.Delta,
		Flags:  flags,
		Weapon: uint8(in.Weapon),
		Fire:   uint16(in.Fire),
	}, nil
}
