package entities

import (
	"image/color"

	"github.com/decker502/cavestrike/pkg/config"
)

// GroundTarget 地面目标（油罐、火箭、炮塔等）
// 贴着地面轮廓随世界滚动，无自身速度
type GroundTarget struct {
	Object

	Type        string     // 配置表中的类型键
	Points      int        // 击毁得分
	Fuel        float64    // 击毁后补给玩家的燃料量，0 表示无补给
	ShootChance float64    // 每帧向上开火概率
	Color       color.RGBA // 渲染与爆炸粒子颜色
}

// NewGroundTarget 按类型属性在指定位置创建地面目标
// y 应已按地面轮廓与悬浮高度计算好
func NewGroundTarget(targetType string, stats *config.TargetStats, x, y float64) *GroundTarget {
	return &GroundTarget{
		Object: Object{
			X:      x,
			Y:      y,
			Width:  stats.Width,
			Height: stats.Height,
			Active: true,
		},
		Type:        targetType,
		Points:      stats.Points,
		Fuel:        stats.Fuel,
		ShootChance: stats.ShootChance,
		Color:       stats.RGBA,
	}
}

// Update 随世界滚动左移，完全移出左边界后销毁
func (t *GroundTarget) Update(scrollSpeed float64) {
	if !t.Active {
		return
	}

	t.X -= scrollSpeed

	if t.Right() < 0 {
		t.Deactivate()
	}
}
