package arena

// DefaultName - имя встроенной арены
const DefaultName = "e1m1"

// reference - эталонная арена 16x16: стены по периметру, двери 'D', четыре спавна 'E'.
// Клетка (8,8) в этой раскладке - стена, поэтому старт сдвинут на полклетки вверх,
// в свободный ряд 7: игрок никогда не начинает внутри непустой клетки.
var reference = Definition{
	Name: DefaultName,
	Rows: []string{
		"################",
		"#..............#",
		"#...........E..#",
		"#..###...###...#",
		"#..#.......#...#",
		"#..#...D...#...#",
		"#..............#",
		"#..............#",
		"#.E..##D##...E.#",
		"#..............#",
		"#..............#",
		"#..#.......#...#",
		"#..#.......#...#",
		"#..###...###...#",
		"#......E.......#",
		"################",
	},
	Player: &Point{X: 8, Y: 7.5},
}

// Default собирает встроенную арену. Каждый вызов дает независимую сетку.
func Default() *Arena {
	a, err := reference.Build()
	if err != nil {
		// Встроенная карта валидна по построению
		panic(err)
	}
	return a
}
