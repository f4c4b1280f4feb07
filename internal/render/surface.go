package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// Surface - поверхность отрисовки фиксированного размера.
// Предоставляется окружением (окно ebiten, кадровый буфер в headless-режиме).
type Surface interface {
	Size() (width, height int)
	FillRect(x, y, w, h float64, c color.RGBA)
	// DrawText рисует строку; y - базовая линия текста
	DrawText(text string, x, y float64, c color.RGBA)
}

// TextOp - записанный вызов DrawText
type TextOp struct {
	Text  string
	X, Y  float64
	Color color.RGBA
}

// Framebuffer - Surface в памяти на image.RGBA.
// Текст не растеризуется, а записывается в Texts (для headless-режима и тестов).
type Framebuffer struct {
	Image *image.RGBA
	Texts []TextOp
}

// NewFramebuffer создает буфер w x h
func NewFramebuffer(w, h int) *Framebuffer {
	return &Framebuffer{Image: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (f *Framebuffer) Size() (int, int) {
	b := f.Image.Bounds()
	return b.Dx(), b.Dy()
}

// FillRect заливает прямоугольник с альфа-смешиванием (цвет premultiplied, как color.RGBA)
func (f *Framebuffer) FillRect(x, y, w, h float64, c color.RGBA) {
	if !(w > 0) || !(h > 0) {
		return
	}
	r := image.Rect(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Ceil(x+w)), int(math.Ceil(y+h)),
	).Intersect(f.Image.Bounds())
	if r.Empty() {
		return
	}
	op := draw.Over
	if c.A == 0xff {
		op = draw.Src
	}
	draw.Draw(f.Image, r, image.NewUniform(c), image.Point{}, op)
}

func (f *Framebuffer) DrawText(text string, x, y float64, c color.RGBA) {
	f.Texts = append(f.Texts, TextOp{Text: text, X: x, Y: y, Color: c})
}

// frameStarter - поверхность, которой нужно знать о начале кадра
type frameStarter interface {
	BeginFrame()
}

// BeginFrame сбрасывает записанный текст предыдущего кадра
func (f *Framebuffer) BeginFrame() {
	f.Texts = f.Texts[:0]
}
