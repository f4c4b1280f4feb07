package arena

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/wjkennedy/jira-quake3/pkg/logger"
)

// GeneratedPrefix - префикс имени для процедурных арен: "random" или "random:<seed>"
const GeneratedPrefix = "random"

// GenOptions - параметры генератора комнат
type GenOptions struct {
	Width       int
	Height      int
	MaxRooms    int
	MinRoomSize int
	MaxRoomSize int
	SpawnChance float64
}

// DefaultGenOptions возвращает параметры для арены 32x32
func DefaultGenOptions() GenOptions {
	return GenOptions{
		Width:       32,
		Height:      32,
		MaxRooms:    8,
		MinRoomSize: 4,
		MaxRoomSize: 8,
		SpawnChance: 0.7,
	}
}

// Center возвращает центральную клетку прямоугольника
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Intersects проверяет пересечение с зазором в одну клетку
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.W && r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H && r.Y+r.H >= other.Y
}

// Generate строит арену из комнат, соединенных коридорами.
// Один и тот же seed дает одну и ту же арену.
func Generate(seed int64, opts GenOptions) (*Arena, error) {
	if opts.Width < opts.MaxRoomSize+3 || opts.Height < opts.MaxRoomSize+3 {
		return nil, fmt.Errorf("generate arena %dx%d: too small for rooms of %d", opts.Width, opts.Height, opts.MaxRoomSize)
	}
	if opts.MinRoomSize < 2 || opts.MinRoomSize > opts.MaxRoomSize {
		return nil, fmt.Errorf("generate arena: bad room size range [%d, %d]", opts.MinRoomSize, opts.MaxRoomSize)
	}

	rng := rand.New(rand.NewSource(seed))

	// 1. Заливаем все стенами
	b := NewBuilder(opts.Width, opts.Height).WithName(fmt.Sprintf("%s_%d", GeneratedPrefix, seed))
	b.Block(Rect{X: 0, Y: 0, W: opts.Width, H: opts.Height})

	// 2. Комнаты и коридоры
	var rooms []Rect
	for i := 0; i < opts.MaxRooms; i++ {
		w := randRange(rng, opts.MinRoomSize, opts.MaxRoomSize)
		h := randRange(rng, opts.MinRoomSize, opts.MaxRoomSize)
		room := Rect{
			X: randRange(rng, 1, opts.Width-w-1),
			Y: randRange(rng, 1, opts.Height-h-1),
			W: w,
			H: h,
		}

		overlap := false
		for _, other := range rooms {
			if room.Intersects(other) {
				overlap = true
				break
			}
		}
		if overlap {
			continue
		}

		b.Carve(room)
		if len(rooms) > 0 {
			px, py := rooms[len(rooms)-1].Center()
			cx, cy := room.Center()
			if rng.Intn(2) == 0 {
				b.carveH(px, cx, py)
				b.carveV(py, cy, cx)
			} else {
				b.carveV(py, cy, px)
				b.carveH(px, cx, cy)
			}
		}
		rooms = append(rooms, room)
	}

	// Первая комната всегда помещается в пустую карту
	sx, sy := rooms[0].Center()
	b.Player(float64(sx)+0.5, float64(sy)+0.5)

	// 3. Спавны врагов во всех комнатах кроме стартовой
	spawns := 0
	for _, room := range rooms[1:] {
		if rng.Float64() >= opts.SpawnChance {
			continue
		}
		cx, cy := room.Center()
		b.Spawn(cx, cy)
		spawns++
	}
	if spawns == 0 && len(rooms) > 1 {
		cx, cy := rooms[len(rooms)-1].Center()
		b.Spawn(cx, cy)
		spawns++
	}

	a, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("generate arena seed %d: %w", seed, err)
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "arena_generator",
		"seed":      seed,
		"rooms":     len(rooms),
		"spawns":    spawns,
	}).Debug("Arena generated")
	return a, nil
}

// ParseGenerated разбирает имя вида "random" или "random:<seed>".
// Без seed берется fallback.
func ParseGenerated(name string, fallback int64) (int64, bool, error) {
	if name == GeneratedPrefix {
		return fallback, true, nil
	}
	rest, ok := strings.CutPrefix(name, GeneratedPrefix+":")
	if !ok {
		return 0, false, nil
	}
	seed, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, true, fmt.Errorf("bad arena seed %q: %w", rest, err)
	}
	return seed, true, nil
}

func randRange(rng *rand.Rand, lo, hi int) int {
	return rng.Intn(hi-lo+1) + lo
}
