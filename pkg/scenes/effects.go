package scenes

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 霓虹配色
var (
	colorBackground = color.RGBA{R: 0x05, G: 0x02, B: 0x14, A: 0xff}
	colorCyan       = color.RGBA{R: 0x00, G: 0xff, B: 0xff, A: 0xff}
	colorMagenta    = color.RGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff}
	colorYellow     = color.RGBA{R: 0xff, G: 0xff, B: 0x00, A: 0xff}
	colorGreen      = color.RGBA{R: 0x00, G: 0xff, B: 0x00, A: 0xff}
	colorOrange     = color.RGBA{R: 0xff, G: 0x66, B: 0x00, A: 0xff}
	colorRed        = color.RGBA{R: 0xff, G: 0x22, B: 0x22, A: 0xff}
	colorPanel      = color.RGBA{A: 0xcc}
)

// burst 一次粒子爆发，用向外扩散的圆环近似
type burst struct {
	x, y      float64
	age, life float64
	maxRadius float64
	colors    []color.RGBA
}

// Effects 短生命周期的视觉效果
type Effects struct {
	bursts []burst
}

// AddBurst 在 (x, y) 添加一次爆发
//
// 参数：
//   - life: 持续时间（秒）
//   - maxRadius: 扩散到的最大半径
func (e *Effects) AddBurst(x, y, life, maxRadius float64, colors ...color.RGBA) {
	if len(colors) == 0 {
		colors = []color.RGBA{colorCyan}
	}
	e.bursts = append(e.bursts, burst{x: x, y: y, life: life, maxRadius: maxRadius, colors: colors})
}

// Update 推进所有效果，移除已结束的
func (e *Effects) Update(dt float64) {
	alive := e.bursts[:0]
	for _, b := range e.bursts {
		b.age += dt
		if b.age < b.life {
			alive = append(alive, b)
		}
	}
	e.bursts = alive
}

// Len 进行中的效果数量
func (e *Effects) Len() int {
	return len(e.bursts)
}

// Draw 绘制所有效果
func (e *Effects) Draw(screen *ebiten.Image) {
	for _, b := range e.bursts {
		progress := b.age / b.life
		radius := float32(b.maxRadius * progress)
		alpha := uint8(255 * (1 - progress))
		for i, c := range b.colors {
			c.A = alpha
			r := radius * float32(len(b.colors)-i) / float32(len(b.colors))
			vector.StrokeCircle(screen, float32(b.x), float32(b.y), r, 2, c, true)
		}
	}
}

func logWarning(format string, args ...any) {
	log.Printf("[Scenes] Warning: "+format, args...)
}
