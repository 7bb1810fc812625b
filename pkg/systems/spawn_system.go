package systems

import (
	"math/rand"

	"github.com/decker502/cavestrike/pkg/config"
	"github.com/decker502/cavestrike/pkg/entities"
)

// SpawnResult 单帧生成结果
// 可能为空；由调用方合并进存活实体列表
type SpawnResult struct {
	Enemies []*entities.Enemy
	Targets []*entities.GroundTarget
}

// SpawnSystem 实体生成系统
//
// 每帧用关卡密度做两次相互独立的伯努利试验，命中后从关卡
// 的加权类型列表中等概率抽取一个类型并在可见区域右侧外
// 构造实体。系统自身不持有任何实体存储。
//
// 退化情形一律静默跳过：走廊太窄放不下敌机、类型键在属性
// 表中不存在，都只是本帧不生成，不报错不重试。
type SpawnSystem struct {
	rng   *rand.Rand
	units *config.UnitTable
}

// NewSpawnSystem 创建生成系统
//
// 参数：
//   - rng: 共享随机源
//   - units: 单位属性表
func NewSpawnSystem(rng *rand.Rand, units *config.UnitTable) *SpawnSystem {
	return &SpawnSystem{
		rng:   rng,
		units: units,
	}
}

// Update 执行本帧的生成试验
//
// 敌机试验与地面目标试验相互独立，两者可在同一帧同时命中
func (ss *SpawnSystem) Update(stage config.StageConfig, terrain *TerrainSystem) SpawnResult {
	var result SpawnResult

	if ss.rng.Float64() < stage.EnemyDensity {
		if enemy := ss.trySpawnEnemy(stage, terrain); enemy != nil {
			result.Enemies = append(result.Enemies, enemy)
		}
	}

	if ss.rng.Float64() < stage.GroundTargetDensity {
		if target := ss.trySpawnTarget(stage, terrain); target != nil {
			result.Targets = append(result.Targets, target)
		}
	}

	return result
}

// trySpawnEnemy 尝试生成一架敌机
//
// 生成高度限制在平均安全走廊内（带固定边距）；走廊太窄
// 放不下该机型时本帧跳过。未知类型键静默丢弃。
func (ss *SpawnSystem) trySpawnEnemy(stage config.StageConfig, terrain *TerrainSystem) *entities.Enemy {
	enemyType := stage.EnemyTypes[ss.rng.Intn(len(stage.EnemyTypes))]
	stats, ok := ss.units.GetEnemy(enemyType)
	if !ok {
		return nil
	}

	top, bottom := terrain.SafeZone()
	minY := top + config.SpawnCorridorMargin + stats.Height/2
	maxY := bottom - config.SpawnCorridorMargin - stats.Height/2
	if minY >= maxY {
		return nil
	}

	x := config.GameWindowWidth + config.SpawnOffscreenX
	y := minY + ss.rng.Float64()*(maxY-minY)
	return entities.NewEnemy(enemyType, stats, x, y)
}

// trySpawnTarget 尝试生成一个地面目标
//
// 贴着生成点的地面轮廓放置，按类型的悬浮高度向上偏移。
// 未知类型键静默丢弃。
func (ss *SpawnSystem) trySpawnTarget(stage config.StageConfig, terrain *TerrainSystem) *entities.GroundTarget {
	targetType := stage.TargetTypes[ss.rng.Intn(len(stage.TargetTypes))]
	stats, ok := ss.units.GetTarget(targetType)
	if !ok {
		return nil
	}

	x := config.GameWindowWidth + config.SpawnOffscreenX
	_, floor := terrain.BoundsAt(x)
	y := floor - stats.Height/2 - stats.FloatHeight
	return entities.NewGroundTarget(targetType, stats, x, y)
}
