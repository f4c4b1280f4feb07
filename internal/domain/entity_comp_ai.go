package domain

// EnemyState - поведение врага
type EnemyState uint8

const (
	EnemyIdle EnemyState = iota
	EnemyAlert
)

func (s EnemyState) String() string {
	if s == EnemyAlert {
		return "alert"
	}
	return "idle"
}

// MarshalText - состояние в JSON строкой ("idle"/"alert")
func (s EnemyState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText - обратное преобразование
func (s *EnemyState) UnmarshalText(text []byte) error {
	if string(text) == "alert" {
		*s = EnemyAlert
	} else {
		*s = EnemyIdle
	}
	return nil
}

// Alert переводит врага в режим преследования
func (e *Enemy) Alert() {
	e.State = EnemyAlert
}

// IsAlert - преследует ли враг игрока
func (e *Enemy) IsAlert() bool {
	return e.State == EnemyAlert
}
