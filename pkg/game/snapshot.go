package game

import (
	"github.com/decker502/cavestrike/pkg/entities"
)

// Snapshot 单帧的只读渲染快照
//
// 每帧由游戏场景构建，交给绘制端与无窗口工具消费。
// 切片与指针共享底层实体数据，消费方不得修改；
// 快照仅在本帧内有效，不得跨帧持有。
type Snapshot struct {
	State State // 当前顶层状态

	Score      int     // 当前得分
	BestScore  int     // 历史最高分
	StageIndex int     // 当前关卡索引
	StageName  string  // 当前关卡名称
	Distance   float64 // 本关已滚动距离
	Lives      int     // 剩余生命
	Fuel       float64 // 剩余燃料

	Player    *entities.Player
	Enemies   []*entities.Enemy
	Targets   []*entities.GroundTarget
	Bullets   []*entities.Bullet
	Bombs     []*entities.Bomb
	Particles []*entities.Particle
	Segments  []*entities.TerrainSegment

	TransitionRemaining int // 过关停顿剩余帧数，非过场时为 0
}
