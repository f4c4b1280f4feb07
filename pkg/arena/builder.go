package arena

import "fmt"

// Rect - прямоугольник клеток
type Rect struct {
	X, Y, W, H int
}

// Builder предоставляет fluent API для сборки арен (тесты, демо-карты)
type Builder struct {
	name   string
	width  int
	height int
	cells  [][]byte
	player *Point
}

// NewBuilder создает пустую арену w x h, обнесенную стеной
func NewBuilder(w, h int) *Builder {
	b := &Builder{name: fmt.Sprintf("custom_%dx%d", w, h), width: w, height: h}
	b.cells = make([][]byte, h)
	for y := 0; y < h; y++ {
		b.cells[y] = make([]byte, w)
		for x := 0; x < w; x++ {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				b.cells[y][x] = GlyphWall
			} else {
				b.cells[y][x] = GlyphEmpty
			}
		}
	}
	return b
}

// WithName задает имя арены
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

func (b *Builder) set(x, y int, glyph byte) {
	if x >= 0 && y >= 0 && x < b.width && y < b.height {
		b.cells[y][x] = glyph
	}
}

// Wall ставит стену в клетку
func (b *Builder) Wall(x, y int) *Builder {
	b.set(x, y, GlyphWall)
	return b
}

// Block заливает прямоугольник стенами
func (b *Builder) Block(r Rect) *Builder {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			b.set(x, y, GlyphWall)
		}
	}
	return b
}

// Carve вырезает пустой прямоугольник, не трогая внешний периметр
func (b *Builder) Carve(r Rect) *Builder {
	for y := max(r.Y, 1); y < min(r.Y+r.H, b.height-1); y++ {
		for x := max(r.X, 1); x < min(r.X+r.W, b.width-1); x++ {
			b.cells[y][x] = GlyphEmpty
		}
	}
	return b
}

func (b *Builder) carveH(x1, x2, y int) {
	b.Carve(Rect{X: min(x1, x2), Y: y, W: max(x1, x2) - min(x1, x2) + 1, H: 1})
}

func (b *Builder) carveV(y1, y2, x int) {
	b.Carve(Rect{X: x, Y: min(y1, y2), W: 1, H: max(y1, y2) - min(y1, y2) + 1})
}

// Door ставит дверь
func (b *Builder) Door(x, y int) *Builder {
	b.set(x, y, GlyphDoor)
	return b
}

// Spawn ставит маркер спавна врага
func (b *Builder) Spawn(x, y int) *Builder {
	b.set(x, y, GlyphSpawn)
	return b
}

// Player задает точную стартовую точку игрока
func (b *Builder) Player(x, y float64) *Builder {
	b.player = &Point{X: x, Y: y}
	return b
}

// Definition возвращает текстовое описание собранной арены
func (b *Builder) Definition() Definition {
	rows := make([]string, b.height)
	for y := range b.cells {
		rows[y] = string(b.cells[y])
	}
	return Definition{Name: b.name, Rows: rows, Player: b.player}
}

// Build проверяет и собирает арену
func (b *Builder) Build() (*Arena, error) {
	return b.Definition().Build()
}

// MustBuild - Build, паникующий при ошибке (для тестов и встроенных карт)
func (b *Builder) MustBuild() *Arena {
	a, err := b.Build()
	if err != nil {
		panic(err)
	}
	return a
}
