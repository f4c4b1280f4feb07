// Package render проецирует мир на экран: по лучу на столбец, коррекция "рыбьего глаза",
// затенение по дистанции и HUD поверх. Состояние симуляции только читается.
package render

import (
	"image/color"
	"math"

	"github.com/wjkennedy/jira-quake3/internal/domain"
	"github.com/wjkennedy/jira-quake3/internal/systems"
)

// Палитра
var (
	ColorCeiling    = color.RGBA{0x33, 0x33, 0x33, 0xff}
	ColorFloor      = color.RGBA{0x66, 0x66, 0x66, 0xff}
	ColorPanel      = color.RGBA{0, 0, 0, 0x80}
	ColorText       = color.RGBA{0xff, 0xff, 0xff, 0xff}
	ColorAmmo       = color.RGBA{0xff, 0xff, 0x00, 0xff}
	ColorCrosshair  = color.RGBA{0x00, 0xff, 0x00, 0xff}
	ColorEnemyCount = color.RGBA{0xff, 0x00, 0x00, 0xff}
	ColorHealthSafe = color.RGBA{0x00, 0xff, 0x00, 0xff}
	ColorHealthWarn = color.RGBA{0xff, 0xff, 0x00, 0xff}
	ColorHealthCrit = color.RGBA{0xff, 0x00, 0x00, 0xff}
)

// Скорость затухания яркости с дистанцией
const (
	entityFade = 30
	wallFade   = 20

	minDistance = 1e-6
)

// Options - параметры проекции
type Options struct {
	Columns int     // число лучей (столбцов экрана)
	FOV     float64 // поле зрения, радианы
}

// DefaultOptions - 320 столбцов, 60 градусов
func DefaultOptions() Options {
	return Options{Columns: 320, FOV: math.Pi / 3}
}

// Frame - то, что HUD показывает помимо состояния мира
type Frame struct {
	FPS int
}

// Renderer рисует кадр. Не хранит ссылок на состояние между вызовами.
type Renderer struct {
	opts Options
	ray  systems.RayParams
}

// New создает рендерер. Некорректные параметры заменяются значениями по умолчанию.
func New(opts Options, rules domain.Rules) *Renderer {
	def := DefaultOptions()
	if opts.Columns <= 0 {
		opts.Columns = def.Columns
	}
	// Поле зрения строго в (0, π): иначе крайние столбцы дают неположительную дистанцию
	if !(opts.FOV > 0 && opts.FOV < math.Pi) {
		opts.FOV = def.FOV
	}
	return &Renderer{opts: opts, ray: systems.RayParamsFrom(rules)}
}

// Options возвращает действующие параметры
func (r *Renderer) Options() Options { return r.opts }

// ColumnAngle - угол луча столбца i: равномерное деление поля зрения вокруг взгляда
func (r *Renderer) ColumnAngle(facing float64, i int) float64 {
	return facing - r.opts.FOV/2 + r.opts.FOV*float64(i)/float64(r.opts.Columns)
}

// CorrectedDistance убирает "рыбий глаз": raw * cos(rayAngle - facing)
func CorrectedDistance(raw, rayAngle, facing float64) float64 {
	return raw * math.Cos(rayAngle-facing)
}

// WallHeight - высота проекции стены, обратно пропорциональна исправленной дистанции
func WallHeight(screenHeight int, corrected float64) float64 {
	if !(corrected > minDistance) {
		corrected = minDistance
	}
	return float64(screenHeight) / corrected * 0.5
}

// Shade - цвет столбца: враги красным градиентом, стены серым.
// Яркость монотонно падает с дистанцией и не опускается ниже нуля.
func Shade(kind systems.HitKind, dist float64) color.RGBA {
	if kind == systems.HitEntity {
		b := brightness(dist, entityFade)
		return color.RGBA{b, 0, 0, 0xff}
	}
	b := brightness(dist, wallFade)
	return color.RGBA{b, b, b, 0xff}
}

func brightness(dist, fade float64) uint8 {
	v := 255 - dist*fade
	if !(v > 0) {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Render рисует один кадр: фон, столбцы стен, HUD
func (r *Renderer) Render(s Surface, st *domain.State, f Frame) {
	if fs, ok := s.(frameStarter); ok {
		fs.BeginFrame()
	}
	w, h := s.Size()
	width, height := float64(w), float64(h)

	// 1. Потолок и пол
	s.FillRect(0, 0, width, height/2, ColorCeiling)
	s.FillRect(0, height/2, width, height/2, ColorFloor)

	// 2. По лучу на столбец
	p := st.Player
	enemies := st.Store.Enemies()
	colW := width/float64(r.opts.Columns) + 1

	for i := 0; i < r.opts.Columns; i++ {
		angle := r.ColumnAngle(p.Angle, i)
		hit := systems.Cast(st.Grid, enemies, p.Pos, angle, r.ray)
		corrected := CorrectedDistance(hit.Distance, angle, p.Angle)

		wallH := WallHeight(h, corrected)
		x := float64(i) / float64(r.opts.Columns) * width
		y := (height - wallH) / 2
		s.FillRect(x, y, colW, wallH, Shade(hit.Kind, corrected))
	}

	// 3. HUD
	DrawHUD(s, st.Player, st.Store.EnemyCount(), f)
}
