package host

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// debugFontHeight - высота строки отладочного шрифта ebitenutil
const debugFontHeight = 16

// Surface реализует render.Surface поверх ebiten.Image
type Surface struct {
	img *ebiten.Image
}

func NewSurface(img *ebiten.Image) *Surface {
	return &Surface{img: img}
}

func (s *Surface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Surface) FillRect(x, y, w, h float64, c color.RGBA) {
	vector.DrawFilledRect(s.img, float32(x), float32(y), float32(w), float32(h), c, false)
}

// DrawText печатает отладочным шрифтом. y - базовая линия, шрифт рисуется от верхнего края.
// Отладочный шрифт одноцветный, цвет игнорируется.
func (s *Surface) DrawText(text string, x, y float64, _ color.RGBA) {
	ebitenutil.DebugPrintAt(s.img, text, int(x), int(y)-debugFontHeight+4)
}

// Image - изображение, в которое идет отрисовка
func (s *Surface) Image() *ebiten.Image { return s.img }
