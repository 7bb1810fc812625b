package systems

import (
	"math"
	"math/rand"

	"github.com/decker502/cavestrike/pkg/config"
	"github.com/decker502/cavestrike/pkg/entities"
)

// WallHit 地形碰撞结果
type WallHit int

const (
	WallNone   WallHit = iota // 未碰撞
	WallTop                   // 撞上顶部墙体
	WallBottom                // 撞上底部墙体
)

// String 返回墙体名称，用于日志输出
func (w WallHit) String() string {
	switch w {
	case WallTop:
		return "top"
	case WallBottom:
		return "bottom"
	default:
		return "none"
	}
}

// TerrainSystem 地形生成与维护系统
//
// 维护一条从左到右有序的定宽切片序列，覆盖可见区域加右侧
// 余量。切片高度由其世界绝对X坐标的噪声函数决定：三个不同
// 频率的正弦波叠加，加上构造时从随机源取得的私有相位偏移，
// 输出归一化到 [-1, 1]。相同世界坐标必然得到相同高度，这
// 是确定性回放和测试的基础。
//
// 每帧 Update 把所有切片左移一个滚动量，回收完全移出左边界
// 的切片，并在最右侧覆盖不足时追加恰好一个新切片，均摊
// 每帧 O(1)。
type TerrainSystem struct {
	stage config.StageConfig

	segments []*entities.TerrainSegment

	// 私有相位偏移，构造时固定，顶部与底部相互独立
	topPhase    float64
	bottomPhase float64

	// 下一个追加切片的世界X坐标
	nextWorldX float64
}

// NewTerrainSystem 创建地形系统并预生成覆盖可见区域的切片
//
// 参数：
//   - stage: 当前关卡配置，提供基准高度与变化幅度
//   - rng: 共享随机源，仅在构造时取两次相位
func NewTerrainSystem(stage config.StageConfig, rng *rand.Rand) *TerrainSystem {
	ts := &TerrainSystem{
		stage:       stage,
		topPhase:    rng.Float64() * 2 * math.Pi,
		bottomPhase: rng.Float64() * 2 * math.Pi,
		nextWorldX:  -config.TerrainSegmentWidth,
	}

	// 从左侧一个切片宽度开始铺满到右侧余量
	x := -config.TerrainSegmentWidth
	for x < config.GameWindowWidth+config.TerrainMarginX {
		ts.appendSegment(x)
		x += config.TerrainSegmentWidth
	}

	return ts
}

// appendSegment 在指定屏幕X处追加一个切片
// 高度取自下一个世界坐标的噪声，世界坐标随之推进
func (ts *TerrainSystem) appendSegment(screenX float64) {
	top, bottom := ts.heightsAt(ts.nextWorldX)

	ts.segments = append(ts.segments, &entities.TerrainSegment{
		X:            screenX,
		WorldX:       ts.nextWorldX,
		Width:        config.TerrainSegmentWidth,
		TopHeight:    top,
		BottomHeight: bottom,
	})
	ts.nextWorldX += config.TerrainSegmentWidth
}

// heightsAt 计算世界X坐标处的顶部与底部墙体高度
// 纯函数：相同输入必然得到相同输出
func (ts *TerrainSystem) heightsAt(worldX float64) (top, bottom float64) {
	top = ts.stage.TerrainTopBase + terrainNoise(worldX, ts.topPhase)*ts.stage.TerrainVariation
	bottom = ts.stage.TerrainBottomBase + terrainNoise(worldX, ts.bottomPhase)*ts.stage.TerrainVariation

	// 高度不为负，保证碰撞盒尺寸合法
	top = math.Max(0, top)
	bottom = math.Max(0, bottom)
	return top, bottom
}

// terrainNoise 三正弦叠加噪声，输出归一化到 [-1, 1]
// 权重之和为 1，三个频率互不成整数倍避免明显周期
func terrainNoise(worldX, phase float64) float64 {
	x := worldX * 0.008
	return math.Sin(x+phase)*0.5 +
		math.Sin(x*2.3+phase*1.7)*0.3 +
		math.Sin(x*0.7+phase*0.3)*0.2
}

// Update 推进地形一帧
//
// 先整体左移，再回收完全移出左边界的切片，最后在最右侧
// 覆盖进入可见区域加余量时追加恰好一个新切片
func (ts *TerrainSystem) Update(scrollSpeed float64) {
	for _, seg := range ts.segments {
		seg.X -= scrollSpeed
	}

	for len(ts.segments) > 0 && ts.segments[0].X+ts.segments[0].Width < config.TerrainEvictX {
		ts.segments = ts.segments[1:]
	}

	if len(ts.segments) == 0 {
		// 序列被滚空属于配置异常，重新铺满而不是中断帧循环
		x := -config.TerrainSegmentWidth
		for x < config.GameWindowWidth+config.TerrainMarginX {
			ts.appendSegment(x)
			x += config.TerrainSegmentWidth
		}
		return
	}

	last := ts.segments[len(ts.segments)-1]
	if last.X+last.Width < config.GameWindowWidth+config.TerrainMarginX {
		ts.appendSegment(last.X + last.Width)
	}
}

// BoundsAt 查询屏幕X坐标处的走廊上下边界
//
// 返回走廊上边界（顶部墙体下缘）和下边界（底部墙体上缘）
// 的屏幕Y坐标。没有切片覆盖该位置时退回关卡基准高度，
// 永不报错。
func (ts *TerrainSystem) BoundsAt(x float64) (top, bottom float64) {
	for _, seg := range ts.segments {
		if x >= seg.X && x < seg.X+seg.Width {
			return seg.CeilingY(), seg.FloorY()
		}
	}

	// 无覆盖切片时的兜底：关卡基准轮廓
	return ts.stage.TerrainTopBase, config.GameWindowHeight - ts.stage.TerrainBottomBase
}

// SafeZone 返回当前可见切片的平均走廊边界
// 用于约束玩家活动范围和选取安全的生成高度
func (ts *TerrainSystem) SafeZone() (top, bottom float64) {
	sumTop, sumBottom := 0.0, 0.0
	count := 0

	for _, seg := range ts.segments {
		// 只统计与可见区域有交集的切片
		if seg.X+seg.Width <= 0 || seg.X >= config.GameWindowWidth {
			continue
		}
		sumTop += seg.CeilingY()
		sumBottom += seg.FloorY()
		count++
	}

	if count == 0 {
		return ts.stage.TerrainTopBase, config.GameWindowHeight - ts.stage.TerrainBottomBase
	}
	return sumTop / float64(count), sumBottom / float64(count)
}

// CheckCollision 检查实体碰撞盒是否撞上任一切片的墙体
// 返回被撞的墙体方位，未碰撞返回 WallNone
func (ts *TerrainSystem) CheckCollision(obj *entities.Object) WallHit {
	for _, seg := range ts.segments {
		topWall := seg.TopWall()
		if obj.CollidesWith(&topWall) {
			return WallTop
		}
		bottomWall := seg.BottomWall()
		if obj.CollidesWith(&bottomWall) {
			return WallBottom
		}
	}
	return WallNone
}

// Segments 返回当前切片序列，供渲染与测试读取
func (ts *TerrainSystem) Segments() []*entities.TerrainSegment {
	return ts.segments
}
