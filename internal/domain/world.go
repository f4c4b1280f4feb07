package domain

// CellKind - тип клетки карты
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellWall
	CellDoor
	CellEnemySpawn
)

func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellWall:
		return "wall"
	case CellDoor:
		return "door"
	case CellEnemySpawn:
		return "spawn"
	}
	return "unknown"
}

// Position - непрерывная точка в мировых координатах.
// Клетка точки: (floor(X), floor(Y)).
type Position struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

// Cell - целочисленные координаты клетки
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Grid - статическая геометрия арены.
// После создания неизменяема, кроме однократной очистки клеток спавна.
type Grid struct {
	cells  [][]CellKind
	width  int
	height int

	// Исходные маркеры спавна. Reset выводит врагов из них, а не из текущей карты.
	spawns []Cell
}

// NewGrid копирует строки карты. Замкнутость периметра не проверяется
// (см. pkg/arena для валидации файлов арен).
// Рваные строки дополняются стенами до ширины самой длинной строки.
func NewGrid(rows [][]CellKind) *Grid {
	g := &Grid{height: len(rows)}
	for _, row := range rows {
		if len(row) > g.width {
			g.width = len(row)
		}
	}

	g.cells = make([][]CellKind, g.height)
	for y, row := range rows {
		line := make([]CellKind, g.width)
		for x := range line {
			if x < len(row) {
				line[x] = row[x]
			} else {
				line[x] = CellWall
			}
			if line[x] == CellEnemySpawn {
				g.spawns = append(g.spawns, Cell{X: x, Y: y})
			}
		}
		g.cells[y] = line
	}
	return g
}
