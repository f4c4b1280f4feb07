package domain

// TapeFrame - один записанный тик: нормализованный Δt и снимок ввода
// Кадр с Reset не продвигает симуляцию: при повторе мир сбрасывается в начальное состояние.
type TapeFrame struct {
	Delta float64 `json:"delta"`
	Input Input   `json:"input"`
	Reset bool    `json:"reset,omitempty"`
}

// Tape - лента ввода партии. Advance детерминирован по (state, input, Δt),
// поэтому повтор ленты на свежем состоянии дает тот же результат.
// Состояние симуляции в ленту не пишется.
type Tape struct {
	Arena     string      `json:"arena"`
	Timestamp int64       `json:"timestamp"`
	Rules     uint64      `json:"rules"` // Rules.Fingerprint записи, 0 если неизвестен
	Frames    []TapeFrame `json:"frames"`
}

// Record добавляет кадр
func (t *Tape) Record(delta float64, in Input) {
	t.Frames = append(t.Frames, TapeFrame{Delta: delta, Input: in})
}

// MarkReset отмечает сброс мира между тиками
func (t *Tape) MarkReset() {
	t.Frames = append(t.Frames, TapeFrame{Reset: true})
}

// Ticks - число записанных тиков без маркеров сброса
func (t *Tape) Ticks() int {
	n := 0
	for _, fr := range t.Frames {
		if !fr.Reset {
			n++
		}
	}
	return n
}
