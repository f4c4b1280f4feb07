package domain

// State - единый изменяемый агрегат симуляции.
// Передается по указателю в шаговые функции систем; владеет им один поток.
type State struct {
	Grid   *Grid
	Player Player
	Store  *EntityStore

	// Start - точка появления игрока, Reset возвращает его сюда
	Start Position

	// Tick - число выполненных шагов симуляции
	Tick uint64
}

// NewState создает мир: игрок в start, враги из маркеров спавна.
func NewState(grid *Grid, start Position) *State {
	s := &State{
		Grid:   grid,
		Player: NewPlayer(start),
		Store:  NewEntityStore(),
		Start:  start,
	}
	s.spawnEnemies()
	return s
}

// Reset возвращает игрока к стартовым значениям, удаляет все сущности
// и заново выводит врагов из исходных маркеров спавна (не из текущей карты).
func (s *State) Reset() {
	s.Player = NewPlayer(s.Start)
	s.Store.Clear()
	s.Tick = 0
	s.spawnEnemies()
}

func (s *State) spawnEnemies() {
	for _, c := range s.Grid.Spawns() {
		s.Store.AddEnemy(NewEnemy(c))
	}
	// Клетки спавна становятся полом
	s.Grid.ClearSpawns()
}
