package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 是场景管理器调度的最小单元（标题画面、游玩场景）
// 同一时刻只有一个场景在接收 Update 与 Draw
type Scene interface {
	// Update 推进场景一帧
	// deltaTime 为距上一帧的秒数，定帧模拟的场景可以忽略它
	Update(deltaTime float64)

	// Draw 把场景画面绘制到 screen
	Draw(screen *ebiten.Image)
}

// Saveable 标记在程序退出时需要落盘的场景
//
// 窗口被关闭时主循环退出，随后对当前场景做一次类型断言；
// 实现了本接口的场景在这里获得最后一次持久化机会（最高分）。
type Saveable interface {
	// SaveOnExit 执行退出前的保存
	// 返回 false 表示保存失败；程序仍会正常退出
	SaveOnExit() bool
}
