// Package clock предоставляет монотонные часы для планировщика кадров.
package clock

import "time"

//go:generate mockgen -destination=mock/mock.go -package=mockclock github.com/wjkennedy/jira-quake3/pkg/clock Clock

// Clock источник времени. time.Now несет монотонную составляющую,
// поэтому разности Sub не зависят от перевода системных часов.
type Clock interface {
	Now() time.Time
}

// Real реализует Clock через системное время
type Real struct{}

// Now возвращает текущее время
func (c *Real) Now() time.Time {
	return time.Now()
}

// New возвращает настоящие часы
func New() Clock {
	return &Real{}
}
