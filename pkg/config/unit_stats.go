package config

import (
	"fmt"
	"image/color"
	"os"

	"github.com/decker502/cavestrike/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// 敌机行为标签合法值
// chase 在配置中声明但尚未实现独立逻辑，运动时按 straight 处理
const (
	BehaviorStraight = "straight"
	BehaviorWave     = "wave"
	BehaviorDive     = "dive"
	BehaviorChase    = "chase"
)

// EnemyStats 单个敌机类型的属性配置
type EnemyStats struct {
	Behavior    string  `yaml:"behavior"`    // 运动行为：straight / wave / dive / chase
	Speed       float64 `yaml:"speed"`       // 自身速度（叠加在滚动速度上，向左）
	Health      int     `yaml:"health"`      // 生命值，<=0 时被击毁
	Points      int     `yaml:"points"`      // 击毁得分
	ShootChance float64 `yaml:"shootChance"` // 每帧开火概率（0~1）
	Width       float64 `yaml:"width"`       // 碰撞盒宽度
	Height      float64 `yaml:"height"`      // 碰撞盒高度
	Color       string  `yaml:"color"`       // 渲染颜色，#RRGGBB

	// RGBA 是 Color 解析后的值，校验阶段填充
	RGBA color.RGBA `yaml:"-"`
}

// TargetStats 单个地面目标类型的属性配置
type TargetStats struct {
	Points      int     `yaml:"points"`      // 击毁得分
	Fuel        float64 `yaml:"fuel"`        // 击毁后为玩家补给的燃料量，0 表示无补给
	ShootChance float64 `yaml:"shootChance"` // 每帧向上开火概率（0~1）
	FloatHeight float64 `yaml:"floatHeight"` // 悬浮高度：相对地面轮廓向上的偏移
	Width       float64 `yaml:"width"`       // 碰撞盒宽度
	Height      float64 `yaml:"height"`      // 碰撞盒高度
	Color       string  `yaml:"color"`       // 渲染颜色，#RRGGBB

	// RGBA 是 Color 解析后的值，校验阶段填充
	RGBA color.RGBA `yaml:"-"`
}

// UnitTable 敌机与地面目标的属性总表
type UnitTable struct {
	Enemies map[string]EnemyStats  `yaml:"enemies"` // 敌机类型到属性的映射
	Targets map[string]TargetStats `yaml:"targets"` // 地面目标类型到属性的映射
}

// LoadUnitTable 从嵌入资源加载单位属性表
// 参数：
//
//	filepath - 嵌入资源路径，如 "data/units.yaml"
//
// 返回：
//
//	*UnitTable - 解析后的属性表
//	error - 如果读取、解析或校验失败，返回错误信息
func LoadUnitTable(filepath string) (*UnitTable, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read unit stats file %s: %w", filepath, err)
	}
	return parseUnitTable(data, filepath)
}

// LoadUnitTableFile 从磁盘文件加载单位属性表
// 供无窗口工具和测试使用
func LoadUnitTableFile(filepath string) (*UnitTable, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read unit stats file %s: %w", filepath, err)
	}
	return parseUnitTable(data, filepath)
}

// parseUnitTable 解析并校验单位属性数据
func parseUnitTable(data []byte, source string) (*UnitTable, error) {
	var table UnitTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse unit stats YAML from %s: %w", source, err)
	}

	if err := validateUnitTable(&table); err != nil {
		return nil, fmt.Errorf("invalid unit stats in %s: %w", source, err)
	}

	return &table, nil
}

// validateUnitTable 校验单位属性表并填充解析后的颜色
func validateUnitTable(table *UnitTable) error {
	if len(table.Enemies) == 0 {
		return fmt.Errorf("at least one enemy type is required")
	}
	if len(table.Targets) == 0 {
		return fmt.Errorf("at least one target type is required")
	}

	validBehaviors := map[string]bool{
		BehaviorStraight: true,
		BehaviorWave:     true,
		BehaviorDive:     true,
		BehaviorChase:    true,
	}

	for enemyType, stats := range table.Enemies {
		if !validBehaviors[stats.Behavior] {
			return fmt.Errorf("enemy %s: behavior must be one of: straight, wave, dive, chase, got %q",
				enemyType, stats.Behavior)
		}
		if stats.Speed < 0 {
			return fmt.Errorf("enemy %s: speed cannot be negative, got %v", enemyType, stats.Speed)
		}
		if stats.Health < 1 {
			return fmt.Errorf("enemy %s: health must be at least 1, got %d", enemyType, stats.Health)
		}
		if stats.Points < 0 {
			return fmt.Errorf("enemy %s: points cannot be negative, got %d", enemyType, stats.Points)
		}
		if stats.ShootChance < 0 || stats.ShootChance > 1 {
			return fmt.Errorf("enemy %s: shootChance must be in [0, 1], got %v", enemyType, stats.ShootChance)
		}
		if stats.Width <= 0 || stats.Height <= 0 {
			return fmt.Errorf("enemy %s: width and height must be positive, got %vx%v",
				enemyType, stats.Width, stats.Height)
		}

		rgba, err := ParseHexColor(stats.Color)
		if err != nil {
			return fmt.Errorf("enemy %s: %w", enemyType, err)
		}
		stats.RGBA = rgba
		table.Enemies[enemyType] = stats
	}

	for targetType, stats := range table.Targets {
		if stats.Points < 0 {
			return fmt.Errorf("target %s: points cannot be negative, got %d", targetType, stats.Points)
		}
		if stats.Fuel < 0 {
			return fmt.Errorf("target %s: fuel cannot be negative, got %v", targetType, stats.Fuel)
		}
		if stats.ShootChance < 0 || stats.ShootChance > 1 {
			return fmt.Errorf("target %s: shootChance must be in [0, 1], got %v", targetType, stats.ShootChance)
		}
		if stats.FloatHeight < 0 {
			return fmt.Errorf("target %s: floatHeight cannot be negative, got %v", targetType, stats.FloatHeight)
		}
		if stats.Width <= 0 || stats.Height <= 0 {
			return fmt.Errorf("target %s: width and height must be positive, got %vx%v",
				targetType, stats.Width, stats.Height)
		}

		rgba, err := ParseHexColor(stats.Color)
		if err != nil {
			return fmt.Errorf("target %s: %w", targetType, err)
		}
		stats.RGBA = rgba
		table.Targets[targetType] = stats
	}

	return nil
}

// GetEnemy 获取指定敌机类型的属性
// 如果类型不存在，返回 nil 和 false
func (t *UnitTable) GetEnemy(enemyType string) (*EnemyStats, bool) {
	stats, ok := t.Enemies[enemyType]
	if !ok {
		return nil, false
	}
	return &stats, true
}

// GetTarget 获取指定地面目标类型的属性
// 如果类型不存在，返回 nil 和 false
func (t *UnitTable) GetTarget(targetType string) (*TargetStats, bool) {
	stats, ok := t.Targets[targetType]
	if !ok {
		return nil, false
	}
	return &stats, true
}

// ParseHexColor 解析 #RRGGBB 格式的颜色字符串
func ParseHexColor(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("color must be in #RRGGBB format, got %q", s)
	}

	var r, g, b uint8
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("color must be in #RRGGBB format, got %q: %w", s, err)
	}

	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
