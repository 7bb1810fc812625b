// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/cavestrike/pkg/config"
	"github.com/decker502/cavestrike/pkg/game"
	"github.com/decker502/cavestrike/pkg/scenes"
	"github.com/decker502/cavestrike/pkg/share"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// StartStage 起始关卡索引（0 为第一关），越界值收束到合法范围
	StartStage int
	// Seed 随机种子，为 0 时以当前时间播种
	Seed int64
	// ShareRelays 逗号分隔的战报中继地址（ws:// 或 wss://），为空则不投递
	ShareRelays string
	// Fullscreen 启动时直接进入全屏
	Fullscreen bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 加载关卡与单位配置
	stages, err := config.LoadStageConfigs("data/stages.yaml")
	if err != nil {
		return nil, fmt.Errorf("关卡配置加载失败: %w", err)
	}
	units, err := config.LoadUnitTable("data/units.yaml")
	if err != nil {
		return nil, fmt.Errorf("单位配置加载失败: %w", err)
	}
	log.Printf("[App] 配置加载完成: %d 个关卡, %d 种敌机, %d 种地面目标",
		len(stages), len(units.Enemies), len(units.Targets))

	// 打开跨平台存储；失败时降级为内存模式，不阻止游戏启动
	manager, err := gdata.Open(gdata.Config{AppName: "cavestrike"})
	if err != nil {
		log.Printf("[App] Warning: 存储初始化失败, 最高分仅保留在内存中: %v", err)
		manager = nil
	}
	store := game.NewScoreStore(manager)

	state := game.NewGameState(store, len(stages))

	// 固定种子用于复现同一局；为 nil 时场景自行以时间播种
	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Seed))
		log.Printf("[App] 随机种子: %d", cfg.Seed)
	}

	// 战报投递：一局进入终态时向配置的中继广播战绩
	relays, err := share.ParseRelayList(cfg.ShareRelays)
	if err != nil {
		return nil, fmt.Errorf("中继地址解析失败: %w", err)
	}
	if len(relays) > 0 {
		publisher := share.NewPublisher(share.DefaultTimeout)
		state.SetObserver(func(from, to game.State, payload game.StatePayload) {
			var outcome string
			switch to {
			case game.StateVictory:
				outcome = share.OutcomeVictory
			case game.StateGameOver:
				outcome = share.OutcomeGameOver
			default:
				return
			}

			ann, err := share.NewAnnouncement(outcome, payload.Score, payload.BestScore, payload.StageIndex, time.Now())
			if err != nil {
				log.Printf("[App] 战报生成失败: %v", err)
				return
			}
			// 投递在独立 goroutine 中进行，不阻塞游戏主循环
			go publisher.Publish(context.Background(), ann, relays)
		})
		log.Printf("[App] 战报投递已启用: %d 个中继", len(relays))
	}

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(stageIndex int) game.Scene {
		state.ResetRun()
		state.SetStageIndex(stageIndex)
		return scenes.NewGameScene(sceneManager, state, stages, units, rng)
	})

	// 从标题画面启动；StartStage 只影响标题画面发起的第一局
	sceneManager.SwitchTo(scenes.NewTitleScene(sceneManager, state, cfg.StartStage))

	if cfg.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager: sceneManager,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		isFullscreen := ebiten.IsFullscreen()
		if isFullscreen {
			// 退出全屏
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	// 使用线性滤波绘制游戏画面，提高缩放质量
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear // 使用线性滤波减少锯齿和模糊
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// GetSceneManager 返回场景管理器
// 用于在游戏关闭时保存存档
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
