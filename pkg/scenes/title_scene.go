package scenes

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/decker502/cavestrike/pkg/config"
	"github.com/decker502/cavestrike/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 标题画面配色
var (
	titleBackColor   = color.RGBA{R: 12, G: 16, B: 28, A: 255}
	titleRockColor   = color.RGBA{R: 52, G: 44, B: 38, A: 255}
	titleTextColor   = color.RGBA{R: 240, G: 200, B: 80, A: 255}
	titlePromptColor = color.RGBA{R: 120, G: 220, B: 120, A: 255}
	titleHelpColor   = color.RGBA{R: 150, G: 160, B: 175, A: 255}
)

// TitleScene 标题画面
// 展示最高分与操作说明，等待玩家开始游戏
type TitleScene struct {
	sceneManager *game.SceneManager
	state        *game.GameState

	startStage int     // 开始游戏时的起始关卡（启动参数选关）
	blinkTimer float64 // 开始提示的闪烁计时（秒）
}

// NewTitleScene 创建标题画面
//
// 参数：
//   - sceneManager: 场景管理器，开始游戏时经由它切换场景
//   - state: 状态机，用于展示最高分
//   - startStage: 开始游戏的起始关卡索引（正常为 0）
func NewTitleScene(sceneManager *game.SceneManager, state *game.GameState, startStage int) *TitleScene {
	return &TitleScene{
		sceneManager: sceneManager,
		state:        state,
		startStage:   startStage,
	}
}

// Update 推进闪烁计时并处理开始输入
func (s *TitleScene) Update(deltaTime float64) {
	s.blinkTimer += deltaTime

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		log.Printf("[TitleScene] 开始游戏")
		s.sceneManager.StartRun(s.startStage)
	}
}

// Draw 绘制标题画面
func (s *TitleScene) Draw(screen *ebiten.Image) {
	screen.Fill(titleBackColor)

	// 静态洞穴剪影，纯装饰
	height := float64(config.GameWindowHeight)
	for x := 0.0; x < config.GameWindowWidth; x += config.TerrainSegmentWidth {
		top := 60 + math.Sin(x*0.01)*25
		bottom := 70 + math.Sin(x*0.013+2.1)*30
		w := float32(config.TerrainSegmentWidth)
		vector.DrawFilledRect(screen, float32(x), 0, w, float32(top), titleRockColor, false)
		vector.DrawFilledRect(screen, float32(x), float32(height-bottom), w, float32(bottom), titleRockColor, false)
	}

	centerX := float64(config.GameWindowWidth) / 2
	drawCenteredText(screen, "CAVE STRIKE", centerX, 130, 48, titleTextColor)
	drawCenteredText(screen, fmt.Sprintf("BEST  %d", s.state.BestScore()), centerX, 215, 20, color.White)

	drawCenteredText(screen, "ARROWS / WASD  MOVE", centerX, 285, 14, titleHelpColor)
	drawCenteredText(screen, "SPACE / J  SHOOT      B / K  BOMB", centerX, 310, 14, titleHelpColor)
	drawCenteredText(screen, "P / ESC  PAUSE", centerX, 335, 14, titleHelpColor)

	// 每半秒闪烁一次
	if int(s.blinkTimer*2)%2 == 0 {
		drawCenteredText(screen, "PRESS ENTER TO START", centerX, 400, 18, titlePromptColor)
	}
}
