package entities

import (
	"image/color"
	"math"

	"github.com/decker502/cavestrike/pkg/config"
)

// Enemy 敌机
// 运动规律由行为标签决定，水平速度 = 滚动速度 + 自身速度（净向左）
type Enemy struct {
	Object

	Type        string     // 配置表中的类型键
	Health      int        // 生命值，<=0 时被击毁
	Points      int        // 击毁得分
	Behavior    string     // straight / wave / dive / chase
	Speed       float64    // 自身速度（向左叠加）
	ShootChance float64    // 每帧开火概率
	Color       color.RGBA // 渲染与爆炸粒子颜色

	baseY float64 // wave 行为的摆动中轴
	phase float64 // wave 行为的运行相位
}

// NewEnemy 按类型属性在指定位置创建敌机
func NewEnemy(enemyType string, stats *config.EnemyStats, x, y float64) *Enemy {
	return &Enemy{
		Object: Object{
			X:      x,
			Y:      y,
			Width:  stats.Width,
			Height: stats.Height,
			Active: true,
		},
		Type:        enemyType,
		Health:      stats.Health,
		Points:      stats.Points,
		Behavior:    stats.Behavior,
		Speed:       stats.Speed,
		ShootChance: stats.ShootChance,
		Color:       stats.RGBA,
		baseY:       y,
	}
}

// Update 推进敌机一帧
// wave 从运行相位取正弦位移，dive 恒定下沉；
// chase 尚无独立逻辑，与 straight 一样不做垂直运动
func (e *Enemy) Update(scrollSpeed float64) {
	if !e.Active {
		return
	}

	e.X -= scrollSpeed + e.Speed

	switch e.Behavior {
	case config.BehaviorWave:
		e.phase += config.WavePhaseStep
		e.Y = e.baseY + math.Sin(e.phase)*config.WaveAmplitude
	case config.BehaviorDive:
		e.Y += config.DiveDriftSpeed
	}

	// 完全移出左边界后销毁
	if e.Right() < 0 {
		e.Deactivate()
	}
}

// TakeDamage 扣除生命值，返回本次伤害是否击毁敌机
func (e *Enemy) TakeDamage(damage int) bool {
	e.Health -= damage
	return e.Health <= 0
}
