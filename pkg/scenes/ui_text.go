package scenes

import (
	"bytes"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// 界面字体：首次使用时从内置字体数据解析，按字号缓存。
// 解析失败时保持 nil，所有文字绘制降级为调试文本。
var (
	uiFontSource *text.GoTextFaceSource
	uiFontFailed bool
	uiFaceCache  = map[float64]*text.GoTextFace{}
)

// uiFace 返回指定字号的界面字体
// 字体不可用时返回 nil，调用方需降级处理
func uiFace(size float64) *text.GoTextFace {
	if face, ok := uiFaceCache[size]; ok {
		return face
	}

	if uiFontSource == nil {
		if uiFontFailed {
			return nil
		}
		source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			log.Printf("[Scenes] Warning: Failed to parse built-in font: %v", err)
			uiFontFailed = true
			return nil
		}
		uiFontSource = source
	}

	face := &text.GoTextFace{
		Source: uiFontSource,
		Size:   size,
	}
	uiFaceCache[size] = face
	return face
}

// drawText 在指定位置绘制一行文字（左上角对齐）
func drawText(screen *ebiten.Image, str string, x, y, size float64, clr color.Color) {
	face := uiFace(size)
	if face == nil {
		// Fallback: 字体不可用时使用调试文本
		ebitenutil.DebugPrintAt(screen, str, int(x), int(y))
		return
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}

// drawCenteredText 以水平中心点绘制一行文字
func drawCenteredText(screen *ebiten.Image, str string, centerX, y, size float64, clr color.Color) {
	face := uiFace(size)
	if face == nil {
		ebitenutil.DebugPrintAt(screen, str, int(centerX), int(y))
		return
	}

	width := text.Advance(str, face)
	op := &text.DrawOptions{}
	op.GeoM.Translate(centerX-width/2, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}
