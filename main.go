package main

import (
	"flag"
	"log"
	"os"

	"github.com/decker502/cavestrike/pkg/app"
	"github.com/decker502/cavestrike/pkg/config"
	"github.com/decker502/cavestrike/pkg/embedded"
	"github.com/decker502/cavestrike/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose     = flag.Bool("verbose", false, "显示详细调试日志")
	stage       = flag.Int("stage", 1, "起始关卡编号（1 为第一关）")
	seed        = flag.Int64("seed", 0, "随机种子，0 表示以当前时间播种")
	shareRelays = flag.String("share-relays", "", "战报中继地址列表，逗号分隔（ws:// 或 wss://）")
	fullscreen  = flag.Bool("fullscreen", false, "启动时直接进入全屏")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:     *verbose,
		StartStage:  *stage - 1,
		Seed:        *seed,
		ShareRelays: *shareRelays,
		Fullscreen:  *fullscreen,
	})
	if err != nil {
		// 非 verbose 模式下日志已被丢弃，恢复输出保证错误可见
		log.SetOutput(os.Stderr)
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Cave Strike")

	// 游戏主循环，窗口关闭后返回
	if err := ebiten.RunGame(gameApp); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("游戏运行出错: %v", err)
	}

	// 窗口关闭后给当前场景一次落盘机会（最高分持久化）
	if saveable, ok := gameApp.GetSceneManager().GetCurrentScene().(game.Saveable); ok {
		if !saveable.SaveOnExit() {
			log.Printf("[Main] 退出时保存失败")
		}
	}
}
