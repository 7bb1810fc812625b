// 无窗口模拟工具
//
// 不启动 ebiten 主循环，直接以 60Hz 步进游戏场景，用脚本化的
// 自动驾驶输入飞完一局。用于回归验证模拟核心与调参：
//
//	go run ./cmd/simulate -seed 42 -stage 1 -interval 120
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/decker502/cavestrike/pkg/config"
	"github.com/decker502/cavestrike/pkg/game"
	"github.com/decker502/cavestrike/pkg/scenes"
)

var (
	verbose   = flag.Bool("verbose", false, "显示场景内部日志")
	stage     = flag.Int("stage", 1, "起始关卡编号（1 为第一关）")
	seed      = flag.Int64("seed", 0, "随机种子，0 表示以当前时间播种")
	maxFrames = flag.Int("frames", 36000, "最大模拟帧数（60 帧 = 1 秒）")
	interval  = flag.Int("interval", 120, "每隔多少帧输出一次状态，0 表示不输出")
	stageFile = flag.String("stages", "data/stages.yaml", "关卡配置文件路径")
	unitFile  = flag.String("units", "data/units.yaml", "单位配置文件路径")
)

// autopilot 简易自动驾驶
//
// 每帧瞄准机身前方走廊最窄处的中线，持续开火并周期性投弹。
// 不躲避敌机与敌弹，碰运气，所以长局多半以坠毁收场。
type autopilot struct {
	scene *scenes.GameScene
	frame int
}

// read 生成本帧输入，作为键盘采样的替身注入场景
func (p *autopilot) read() game.InputState {
	in := game.InputState{
		Shoot: true,
		Bomb:  p.frame%45 == 0,
	}

	snap := p.scene.Snapshot()
	if snap.Player == nil {
		return in
	}

	targetY := corridorCenterAhead(snap, snap.Player.X, snap.Player.X+120)
	switch {
	case snap.Player.Y > targetY+4:
		in.Up = true
	case snap.Player.Y < targetY-4:
		in.Down = true
	}
	return in
}

// corridorCenterAhead 返回 [fromX, toX) 范围内最窄走廊的中线高度
// 范围内没有地形切片时退回屏幕中线
func corridorCenterAhead(snap game.Snapshot, fromX, toX float64) float64 {
	maxTop := -1.0
	maxBottom := -1.0
	for _, seg := range snap.Segments {
		if seg.X+seg.Width <= fromX || seg.X >= toX {
			continue
		}
		if seg.TopHeight > maxTop {
			maxTop = seg.TopHeight
		}
		if seg.BottomHeight > maxBottom {
			maxBottom = seg.BottomHeight
		}
	}
	if maxTop < 0 || maxBottom < 0 {
		return config.GameWindowHeight / 2
	}
	floor := config.GameWindowHeight - maxBottom
	return (maxTop + floor) / 2
}

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	stages, err := config.LoadStageConfigsFile(*stageFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "关卡配置加载失败: %v\n", err)
		os.Exit(1)
	}
	units, err := config.LoadUnitTableFile(*unitFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "单位配置加载失败: %v\n", err)
		os.Exit(1)
	}

	actualSeed := *seed
	if actualSeed == 0 {
		actualSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(actualSeed))

	state := game.NewGameState(nil, len(stages))
	state.SetStageIndex(*stage - 1)
	sceneManager := game.NewSceneManager()
	scene := scenes.NewGameScene(sceneManager, state, stages, units, rng)

	pilot := &autopilot{scene: scene}
	scene.SetInputReader(pilot.read)

	fmt.Println("=== 无窗口模拟 ===")
	fmt.Printf("种子=%d | 起始关卡=%d | 关卡总数=%d | 最大帧数=%d\n",
		actualSeed, state.StageIndex()+1, len(stages), *maxFrames)

	simulated := 0
	for frame := 1; frame <= *maxFrames; frame++ {
		pilot.frame = frame
		scene.Update(1.0 / 60.0)
		simulated = frame

		snap := scene.Snapshot()
		if *interval > 0 && frame%*interval == 0 {
			fmt.Printf("帧=%d | 状态=%v | 关卡=%d:%s | 得分=%d | 生命=%d | 燃料=%.1f | 距离=%.0f/%.0f | 敌机=%d | 目标=%d\n",
				frame, snap.State, snap.StageIndex+1, snap.StageName,
				snap.Score, snap.Lives, snap.Fuel,
				snap.Distance, config.StageAt(stages, snap.StageIndex).Length,
				len(snap.Enemies), len(snap.Targets))
		}

		if snap.State == game.StateGameOver || snap.State == game.StateVictory {
			break
		}
	}

	final := scene.Snapshot()
	fmt.Println("=== 模拟结束 ===")
	fmt.Printf("帧数=%d (%.1f 秒) | 最终状态=%v | 关卡=%d:%s\n",
		simulated, float64(simulated)/60.0, final.State, final.StageIndex+1, final.StageName)
	fmt.Printf("得分=%d | 最高分=%d | 剩余生命=%d | 剩余燃料=%.1f\n",
		final.Score, final.BestScore, final.Lives, final.Fuel)

	switch final.State {
	case game.StateVictory:
		fmt.Println("✅ 通关")
	case game.StateGameOver:
		fmt.Println("❌ 坠毁")
	default:
		fmt.Println("⏱ 达到最大帧数，模拟截断")
	}
}
