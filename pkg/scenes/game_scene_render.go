package scenes

import (
	"fmt"
	"image/color"

	"github.com/decker502/cavestrike/pkg/config"
	"github.com/decker502/cavestrike/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 洞穴与界面配色；实体本体颜色来自单位配置表
var (
	backgroundColor  = color.RGBA{R: 10, G: 14, B: 24, A: 255}
	rockColor        = color.RGBA{R: 84, G: 70, B: 58, A: 255}
	rockEdgeColor    = color.RGBA{R: 120, G: 100, B: 80, A: 255}
	playerColor      = color.RGBA{R: 90, G: 200, B: 250, A: 255}
	playerTrimColor  = color.RGBA{R: 230, G: 240, B: 250, A: 255}
	playerShotColor  = color.RGBA{R: 255, G: 240, B: 120, A: 255}
	hostileShotColor = color.RGBA{R: 255, G: 90, B: 90, A: 255}
	bombColor        = color.RGBA{R: 200, G: 210, B: 220, A: 255}
	fuelBarBackColor = color.RGBA{R: 60, G: 30, B: 30, A: 255}
	fuelBarFillColor = color.RGBA{R: 80, G: 200, B: 90, A: 255}
	fuelBarLowColor  = color.RGBA{R: 230, G: 70, B: 50, A: 255}
	hudTextColor     = color.RGBA{R: 220, G: 225, B: 235, A: 255}
	overlayDimColor  = color.RGBA{R: 0, G: 0, B: 0, A: 160}
)

// Draw 绘制本帧画面
// 全部绘制基于快照，模拟状态在 Update 中已经定格
func (s *GameScene) Draw(screen *ebiten.Image) {
	snap := s.Snapshot()

	screen.Fill(backgroundColor)
	s.drawTerrain(screen, snap)
	s.drawEntities(screen, snap)
	s.drawParticles(screen, snap)
	s.drawPlayer(screen, snap)
	s.drawHUD(screen, snap)

	switch snap.State {
	case game.StatePaused:
		s.drawPauseOverlay(screen)
	case game.StateStageTransition:
		s.drawTransitionOverlay(screen, snap)
	case game.StateGameOver:
		s.drawGameOverOverlay(screen, snap)
	case game.StateVictory:
		s.drawVictoryOverlay(screen, snap)
	}

	if s.debugInfo {
		s.drawDebugInfo(screen, snap)
	}
}

// drawTerrain 逐切片绘制上下墙体，并沿墙沿描边
func (s *GameScene) drawTerrain(screen *ebiten.Image, snap game.Snapshot) {
	height := float32(config.GameWindowHeight)
	for _, seg := range snap.Segments {
		x := float32(seg.X)
		w := float32(seg.Width)
		top := float32(seg.TopHeight)
		bottom := float32(seg.BottomHeight)

		vector.DrawFilledRect(screen, x, 0, w, top, rockColor, false)
		vector.DrawFilledRect(screen, x, height-bottom, w, bottom, rockColor, false)
		vector.StrokeLine(screen, x, top, x+w, top, 2, rockEdgeColor, false)
		vector.StrokeLine(screen, x, height-bottom, x+w, height-bottom, 2, rockEdgeColor, false)
	}
}

// drawEntities 绘制敌机、地面目标与弹体
func (s *GameScene) drawEntities(screen *ebiten.Image, snap game.Snapshot) {
	for _, e := range snap.Enemies {
		if !e.Active {
			continue
		}
		vector.DrawFilledRect(screen, float32(e.Left()), float32(e.Top()),
			float32(e.Width), float32(e.Height), e.Color, false)
		// 机头朝左的亮色短线
		vector.StrokeLine(screen, float32(e.Left()), float32(e.Y),
			float32(e.X), float32(e.Y), 2, playerTrimColor, false)
	}

	for _, t := range snap.Targets {
		if !t.Active {
			continue
		}
		vector.DrawFilledRect(screen, float32(t.Left()), float32(t.Top()),
			float32(t.Width), float32(t.Height), t.Color, false)
		if t.ShootChance > 0 {
			// 炮塔立一根朝上的炮管
			vector.StrokeLine(screen, float32(t.X), float32(t.Top()),
				float32(t.X), float32(t.Top()-6), 2, hostileShotColor, false)
		}
	}

	for _, b := range snap.Bullets {
		if !b.Active {
			continue
		}
		clr := playerShotColor
		if !b.FromPlayer {
			clr = hostileShotColor
		}
		vector.DrawFilledRect(screen, float32(b.Left()), float32(b.Top()),
			float32(b.Width), float32(b.Height), clr, false)
	}

	for _, b := range snap.Bombs {
		if !b.Active {
			continue
		}
		vector.DrawFilledCircle(screen, float32(b.X), float32(b.Y),
			float32(b.Width/2), bombColor, true)
	}
}

// drawParticles 绘制爆炸粒子，剩余寿命越短越透明
func (s *GameScene) drawParticles(screen *ebiten.Image, snap game.Snapshot) {
	for _, p := range snap.Particles {
		if !p.Active {
			continue
		}
		clr := p.Color
		if p.Total > 0 {
			fade := float64(p.Life) / float64(p.Total)
			clr.A = uint8(float64(clr.A) * fade)
		}
		vector.DrawFilledRect(screen, float32(p.X-1.5), float32(p.Y-1.5), 3, 3, clr, false)
	}
}

// drawPlayer 绘制玩家机体，无敌期间周期性隐帧呈现闪烁
func (s *GameScene) drawPlayer(screen *ebiten.Image, snap game.Snapshot) {
	p := snap.Player
	if p == nil || !p.Active {
		return
	}
	if p.Invincible && (s.frameCount/4)%2 == 1 {
		return
	}

	vector.DrawFilledRect(screen, float32(p.Left()), float32(p.Top()),
		float32(p.Width), float32(p.Height), playerColor, false)
	// 机头与尾焰
	vector.StrokeLine(screen, float32(p.Right()), float32(p.Y),
		float32(p.Right()+6), float32(p.Y), 2, playerTrimColor, false)
	vector.StrokeLine(screen, float32(p.Left()-5), float32(p.Y),
		float32(p.Left()), float32(p.Y), 2, playerShotColor, false)
}

// drawHUD 绘制得分、生命、燃料条与关卡进度
func (s *GameScene) drawHUD(screen *ebiten.Image, snap game.Snapshot) {
	drawText(screen, fmt.Sprintf("SCORE %d", snap.Score), 12, 8, 16, hudTextColor)
	drawText(screen, fmt.Sprintf("BEST %d", snap.BestScore), 12, 30, 12, hudTextColor)
	drawCenteredText(screen, fmt.Sprintf("STAGE %d  %s", snap.StageIndex+1, snap.StageName),
		float64(config.GameWindowWidth)/2, 8, 14, hudTextColor)

	// 生命以小飞机图标排在右上角
	for i := 0; i < snap.Lives; i++ {
		x := float32(config.GameWindowWidth - 28 - i*22)
		vector.DrawFilledRect(screen, x, 10, 16, 10, playerColor, false)
	}

	// 燃料条
	barX, barY := float32(12), float32(config.GameWindowHeight-24)
	barW, barH := float32(160), float32(12)
	vector.DrawFilledRect(screen, barX, barY, barW, barH, fuelBarBackColor, false)
	ratio := float32(snap.Fuel / config.FuelMax)
	fill := fuelBarFillColor
	if snap.Fuel < config.FuelMax*0.25 {
		fill = fuelBarLowColor
	}
	vector.DrawFilledRect(screen, barX, barY, barW*ratio, barH, fill, false)
	drawText(screen, "FUEL", float64(barX+barW+8), float64(barY)-2, 12, hudTextColor)

	// 关卡进度条贴着屏幕底边
	stage := config.StageAt(s.stages, snap.StageIndex)
	if stage.Length > 0 {
		progress := float32(snap.Distance / stage.Length)
		if progress > 1 {
			progress = 1
		}
		py := float32(config.GameWindowHeight - 6)
		vector.DrawFilledRect(screen, 0, py, float32(config.GameWindowWidth), 3, fuelBarBackColor, false)
		vector.DrawFilledRect(screen, 0, py, float32(config.GameWindowWidth)*progress, 3, hudTextColor, false)
	}
}

// drawDimOverlay 在画面上盖一层半透明遮罩
func drawDimOverlay(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0,
		float32(config.GameWindowWidth), float32(config.GameWindowHeight), overlayDimColor, false)
}

func (s *GameScene) drawPauseOverlay(screen *ebiten.Image) {
	drawDimOverlay(screen)
	centerX := float64(config.GameWindowWidth) / 2
	drawCenteredText(screen, "PAUSED", centerX, 190, 32, hudTextColor)
	drawCenteredText(screen, "P / ESC  RESUME", centerX, 250, 14, hudTextColor)
}

func (s *GameScene) drawTransitionOverlay(screen *ebiten.Image, snap game.Snapshot) {
	centerX := float64(config.GameWindowWidth) / 2
	drawCenteredText(screen, "STAGE CLEAR", centerX, 190, 32, playerShotColor)
	if snap.StageIndex+1 < len(s.stages) {
		next := config.StageAt(s.stages, snap.StageIndex+1)
		drawCenteredText(screen, fmt.Sprintf("NEXT  %s", next.Name), centerX, 250, 16, hudTextColor)
	}
}

func (s *GameScene) drawGameOverOverlay(screen *ebiten.Image, snap game.Snapshot) {
	drawDimOverlay(screen)
	centerX := float64(config.GameWindowWidth) / 2
	drawCenteredText(screen, "GAME OVER", centerX, 170, 36, hostileShotColor)
	drawCenteredText(screen, fmt.Sprintf("SCORE %d    BEST %d", snap.Score, snap.BestScore),
		centerX, 240, 18, hudTextColor)
	drawCenteredText(screen, "ENTER  RETRY      ESC  TITLE", centerX, 290, 14, hudTextColor)
}

func (s *GameScene) drawVictoryOverlay(screen *ebiten.Image, snap game.Snapshot) {
	drawDimOverlay(screen)
	centerX := float64(config.GameWindowWidth) / 2
	drawCenteredText(screen, "ALL STAGES CLEAR", centerX, 170, 36, playerShotColor)
	drawCenteredText(screen, fmt.Sprintf("SCORE %d    BEST %d", snap.Score, snap.BestScore),
		centerX, 240, 18, hudTextColor)
	drawCenteredText(screen, "ENTER  PLAY AGAIN      ESC  TITLE", centerX, 290, 14, hudTextColor)
}

// drawDebugInfo 绘制 F3 调试信息
func (s *GameScene) drawDebugInfo(screen *ebiten.Image, snap game.Snapshot) {
	info := fmt.Sprintf("FPS %.0f  TPS %.0f\nenemies %d  targets %d\nbullets %d  bombs %d  particles %d\ndistance %.1f",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		len(snap.Enemies), len(snap.Targets),
		len(snap.Bullets), len(snap.Bombs), len(snap.Particles),
		snap.Distance)
	ebitenutil.DebugPrintAt(screen, info, 8, 52)
}
