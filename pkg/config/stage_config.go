package config

import (
	"fmt"
	"os"

	"github.com/decker502/cavestrike/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// StageConfig 单个关卡的静态配置
// 关卡表在启动时一次性加载，运行期间只读
type StageConfig struct {
	Name        string  `yaml:"name"`        // 关卡名称，如 "岩壁峡谷"
	Length      float64 `yaml:"length"`      // 通关所需滚动距离（像素）
	ScrollSpeed float64 `yaml:"scrollSpeed"` // 世界滚动速度（像素/帧）

	// 地形轮廓参数：顶部/底部墙体高度 = 基准值 + 噪声 * 变化幅度
	TerrainTopBase    float64 `yaml:"terrainTopBase"`    // 顶部墙体基准高度
	TerrainBottomBase float64 `yaml:"terrainBottomBase"` // 底部墙体基准高度
	TerrainVariation  float64 `yaml:"terrainVariation"`  // 噪声变化幅度

	// 生成密度：每帧独立伯努利试验的概率（0~1）
	EnemyDensity        float64 `yaml:"enemyDensity"`        // 敌机生成概率
	GroundTargetDensity float64 `yaml:"groundTargetDensity"` // 地面目标生成概率

	// 加权类型列表：同一类型可重复出现以提高被选中概率
	// 列表本身即为分布，每个槽位等概率
	EnemyTypes  []string `yaml:"enemyTypes"`  // 敌机类型候选列表
	TargetTypes []string `yaml:"targetTypes"` // 地面目标类型候选列表
}

// stageConfigFile 关卡配置文件的顶层结构
type stageConfigFile struct {
	Stages []StageConfig `yaml:"stages"`
}

// LoadStageConfigs 从嵌入资源加载关卡配置表
// 参数：
//
//	filepath - 嵌入资源路径，如 "data/stages.yaml"
//
// 返回：
//
//	[]StageConfig - 有序的关卡配置列表
//	error - 如果读取、解析或校验失败，返回错误信息
func LoadStageConfigs(filepath string) ([]StageConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage config file %s: %w", filepath, err)
	}
	return parseStageConfigs(data, filepath)
}

// LoadStageConfigsFile 从磁盘文件加载关卡配置表
// 供无窗口工具和测试使用，逻辑与 LoadStageConfigs 一致
func LoadStageConfigsFile(filepath string) ([]StageConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage config file %s: %w", filepath, err)
	}
	return parseStageConfigs(data, filepath)
}

// parseStageConfigs 解析并校验关卡配置数据
func parseStageConfigs(data []byte, source string) ([]StageConfig, error) {
	var file stageConfigFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse stage config YAML from %s: %w", source, err)
	}

	for i := range file.Stages {
		applyStageDefaults(&file.Stages[i])
	}

	if err := validateStageConfigs(file.Stages); err != nil {
		return nil, fmt.Errorf("invalid stage config in %s: %w", source, err)
	}

	return file.Stages, nil
}

// applyStageDefaults 为缺失的可选字段设置默认值
func applyStageDefaults(stage *StageConfig) {
	if stage.Length == 0 {
		stage.Length = 1800
	}
	if stage.ScrollSpeed == 0 {
		stage.ScrollSpeed = 1.8
	}
	if stage.TerrainTopBase == 0 {
		stage.TerrainTopBase = 50
	}
	if stage.TerrainBottomBase == 0 {
		stage.TerrainBottomBase = 70
	}
	if stage.TerrainVariation == 0 {
		stage.TerrainVariation = 40
	}
}

// validateStageConfigs 校验关卡配置表的完整性和合法性
func validateStageConfigs(stages []StageConfig) error {
	if len(stages) == 0 {
		return fmt.Errorf("at least one stage is required")
	}

	for i, stage := range stages {
		if stage.Name == "" {
			return fmt.Errorf("stage %d: name is required", i)
		}

		if stage.Length <= 0 {
			return fmt.Errorf("stage %d: length must be positive, got %v", i, stage.Length)
		}

		// 每帧最多追加一个切片，滚动速度必须小于切片宽度才能保证覆盖
		if stage.ScrollSpeed <= 0 || stage.ScrollSpeed >= TerrainSegmentWidth {
			return fmt.Errorf("stage %d: scrollSpeed must be in (0, %v), got %v",
				i, TerrainSegmentWidth, stage.ScrollSpeed)
		}

		if stage.TerrainVariation < 0 {
			return fmt.Errorf("stage %d: terrainVariation cannot be negative, got %v", i, stage.TerrainVariation)
		}

		// 最坏情况下顶部和底部墙体都取到最大高度，仍需留出可飞行的走廊
		maxWalls := stage.TerrainTopBase + stage.TerrainBottomBase + 2*stage.TerrainVariation
		if maxWalls > GameWindowHeight-120 {
			return fmt.Errorf("stage %d: terrain heights leave corridor narrower than 120px (max walls %v)",
				i, maxWalls)
		}

		if stage.EnemyDensity < 0 || stage.EnemyDensity > 1 {
			return fmt.Errorf("stage %d: enemyDensity must be in [0, 1], got %v", i, stage.EnemyDensity)
		}

		if stage.GroundTargetDensity < 0 || stage.GroundTargetDensity > 1 {
			return fmt.Errorf("stage %d: groundTargetDensity must be in [0, 1], got %v", i, stage.GroundTargetDensity)
		}

		if len(stage.EnemyTypes) == 0 {
			return fmt.Errorf("stage %d: at least one enemy type is required", i)
		}

		if len(stage.TargetTypes) == 0 {
			return fmt.Errorf("stage %d: at least one target type is required", i)
		}
	}

	return nil
}

// StageAt 按索引取关卡配置，越界时钳制到边界
// 供关卡推进和过场预览使用，永不越界
func StageAt(stages []StageConfig, index int) StageConfig {
	if len(stages) == 0 {
		// 空表兜底：返回零值经默认值填充后的配置
		var stage StageConfig
		applyStageDefaults(&stage)
		return stage
	}
	if index < 0 {
		index = 0
	}
	if index >= len(stages) {
		index = len(stages) - 1
	}
	return stages[index]
}
