package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wjkennedy/jira-quake3/internal/domain"
	"github.com/wjkennedy/jira-quake3/internal/systems"
	"github.com/wjkennedy/jira-quake3/pkg/arena"
)

type fillOp struct {
	X, Y, W, H float64
	Color      color.RGBA
}

// recordSurface запоминает все вызовы отрисовки
type recordSurface struct {
	w, h  int
	fills []fillOp
	texts []TextOp
}

func (s *recordSurface) Size() (int, int) { return s.w, s.h }

func (s *recordSurface) FillRect(x, y, w, h float64, c color.RGBA) {
	s.fills = append(s.fills, fillOp{x, y, w, h, c})
}

func (s *recordSurface) DrawText(text string, x, y float64, c color.RGBA) {
	s.texts = append(s.texts, TextOp{Text: text, X: x, Y: y, Color: c})
}

func (s *recordSurface) text(prefix string) (TextOp, bool) {
	for _, t := range s.texts {
		if len(t.Text) >= len(prefix) && t.Text[:len(prefix)] == prefix {
			return t, true
		}
	}
	return TextOp{}, false
}

// Helper: пустая комната 16x16, игрок в центре смотрит на восток
func createTestState() *domain.State {
	return arena.NewBuilder(16, 16).Player(8.5, 8.5).MustBuild().NewState()
}

func TestRender_BackgroundAndColumns(t *testing.T) {
	st := createTestState()
	r := New(Options{Columns: 32, FOV: math.Pi / 3}, domain.DefaultRules())
	s := &recordSurface{w: 640, h: 400}

	r.Render(s, st, Frame{FPS: 60})

	require.GreaterOrEqual(t, len(s.fills), 2+32)

	// 1. Фон: потолок сверху, пол снизу
	assert.Equal(t, fillOp{0, 0, 640, 200, ColorCeiling}, s.fills[0])
	assert.Equal(t, fillOp{0, 200, 640, 200, ColorFloor}, s.fills[1])

	// 2. Столбцы слева направо, ширина W/N+1, по центру по вертикали
	for i := 0; i < 32; i++ {
		col := s.fills[2+i]
		assert.InDelta(t, float64(i)*20, col.X, 1e-9, "column %d", i)
		assert.InDelta(t, 21.0, col.W, 1e-9)
		assert.InDelta(t, 400.0, 2*col.Y+col.H, 1e-9, "column %d is not centered", i)
	}
}

func TestRender_CenterColumnMatchesRay(t *testing.T) {
	st := createTestState()
	r := New(Options{Columns: 32, FOV: math.Pi / 3}, domain.DefaultRules())
	s := &recordSurface{w: 640, h: 400}

	r.Render(s, st, Frame{})

	angle := r.ColumnAngle(st.Player.Angle, 16)
	assert.InDelta(t, st.Player.Angle, angle, 1e-12, "middle column looks straight ahead")

	hit := systems.Cast(st.Grid, nil, st.Player.Pos, angle, systems.RayParamsFrom(domain.DefaultRules()))
	require.Equal(t, systems.HitWall, hit.Kind)
	assert.InDelta(t, 6.5, hit.Distance, 0.11)

	col := s.fills[2+16]
	assert.InDelta(t, WallHeight(400, hit.Distance), col.H, 1e-9)
	assert.Equal(t, Shade(systems.HitWall, hit.Distance), col.Color)
}

func TestRender_FlatWallHasNoFisheye(t *testing.T) {
	st := createTestState()
	r := New(Options{Columns: 32, FOV: math.Pi / 3}, domain.DefaultRules())
	params := systems.RayParamsFrom(domain.DefaultRules())

	// Стена x=15 перпендикулярна взгляду: исправленная дистанция одинакова по всем столбцам
	for i := 0; i < 32; i++ {
		angle := r.ColumnAngle(st.Player.Angle, i)
		hit := systems.Cast(st.Grid, nil, st.Player.Pos, angle, params)
		corrected := CorrectedDistance(hit.Distance, angle, st.Player.Angle)
		assert.InDelta(t, 6.5, corrected, 0.15, "column %d", i)
	}
}

func TestRender_EnemyColumnIsRed(t *testing.T) {
	st := createTestState()
	st.Store.AddEnemy(&domain.Enemy{Pos: domain.Position{X: 11.5, Y: 8.5}, Health: domain.EnemyStartHealth})
	r := New(Options{Columns: 32, FOV: math.Pi / 3}, domain.DefaultRules())
	s := &recordSurface{w: 640, h: 400}

	r.Render(s, st, Frame{})

	col := s.fills[2+16]
	assert.Greater(t, col.Color.R, uint8(0))
	assert.Equal(t, uint8(0), col.Color.G)
	assert.Equal(t, uint8(0), col.Color.B)

	// Враг ближе стены - столбец выше
	edge := s.fills[2]
	assert.Greater(t, col.H, edge.H)
}

func TestRender_DoesNotMutateState(t *testing.T) {
	st := arena.Default().NewState()
	st.Player.Angle = 0.7
	before := st.Snapshot()

	r := New(DefaultOptions(), domain.DefaultRules())
	for i := 0; i < 3; i++ {
		r.Render(NewFramebuffer(320, 200), st, Frame{FPS: 30})
	}

	assert.Equal(t, before, st.Snapshot())
}

func TestNew_Defaults(t *testing.T) {
	r := New(Options{}, domain.DefaultRules())
	assert.Equal(t, DefaultOptions(), r.Options())
}

func TestNew_FOVOutsideRangeFallsBack(t *testing.T) {
	def := DefaultOptions()
	for _, fov := range []float64{-1, 0, math.Pi, 4, math.NaN(), math.Inf(1)} {
		r := New(Options{Columns: 64, FOV: fov}, domain.DefaultRules())
		assert.Equal(t, def.FOV, r.Options().FOV, "fov %v", fov)
		assert.Equal(t, 64, r.Options().Columns)
	}

	r := New(Options{Columns: 64, FOV: math.Pi / 2}, domain.DefaultRules())
	assert.Equal(t, math.Pi/2, r.Options().FOV)
}

func TestShade(t *testing.T) {
	t.Run("wall is gray and fades", func(t *testing.T) {
		assert.Equal(t, color.RGBA{255, 255, 255, 255}, Shade(systems.HitWall, 0))
		assert.Equal(t, color.RGBA{215, 215, 215, 255}, Shade(systems.HitWall, 2))
		assert.Equal(t, color.RGBA{0, 0, 0, 255}, Shade(systems.HitWall, 20))
	})

	t.Run("enemy is red", func(t *testing.T) {
		assert.Equal(t, color.RGBA{225, 0, 0, 255}, Shade(systems.HitEntity, 1))
		assert.Equal(t, color.RGBA{0, 0, 0, 255}, Shade(systems.HitEntity, 9))
	})

	t.Run("monotonic and never negative", func(t *testing.T) {
		prevWall, prevEnemy := uint8(255), uint8(255)
		for d := 0.0; d <= 25; d += 0.05 {
			w := Shade(systems.HitWall, d).R
			e := Shade(systems.HitEntity, d).R
			assert.LessOrEqual(t, w, prevWall)
			assert.LessOrEqual(t, e, prevEnemy)
			prevWall, prevEnemy = w, e
		}
		assert.Equal(t, uint8(0), Shade(systems.HitWall, math.NaN()).R)
	})
}

func TestWallHeight(t *testing.T) {
	assert.InDelta(t, 100.0, WallHeight(400, 2), 1e-9)
	assert.Greater(t, WallHeight(400, 1), WallHeight(400, 2))
	assert.False(t, math.IsInf(WallHeight(400, 0), 0))
	assert.False(t, math.IsNaN(WallHeight(400, math.NaN())))
}

func TestCorrectedDistance(t *testing.T) {
	assert.Equal(t, 5.0, CorrectedDistance(5, 1.2, 1.2))
	assert.InDelta(t, 5*math.Cos(math.Pi/6), CorrectedDistance(5, 1.2+math.Pi/6, 1.2), 1e-12)
}
