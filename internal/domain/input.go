package domain

// Input - снимок ввода на один тик.
// Удерживаемые клавиши - непрерывное состояние, Fire и Weapon - дискретные нажатия.
type Input struct {
	Forward   bool `json:"forward" msgpack:"forward"`
	Backward  bool `json:"backward" msgpack:"backward"`
	TurnLeft  bool `json:"turnLeft" msgpack:"turnLeft"`
	TurnRight bool `json:"turnRight" msgpack:"turnRight"`

	// Fire - число нажатий выстрела с прошлого тика
	Fire int `json:"fire" msgpack:"fire"`
	// Weapon - выбранное оружие 1..7, 0 - без изменений
	Weapon int `json:"weapon" msgpack:"weapon"`
}

// Merge объединяет два снимка: удержание по ИЛИ, выстрелы суммируются,
// выбор оружия берется из более позднего.
func (in Input) Merge(later Input) Input {
	out := Input{
		Forward:   in.Forward || later.Forward,
		Backward:  in.Backward || later.Backward,
		TurnLeft:  in.TurnLeft || later.TurnLeft,
		TurnRight: in.TurnRight || later.TurnRight,
		Fire:      in.Fire + later.Fire,
		Weapon:    in.Weapon,
	}
	if later.Weapon != 0 {
		out.Weapon = later.Weapon
	}
	return out
}

// IsZero - никакого ввода
func (in Input) IsZero() bool {
	return in == Input{}
}
