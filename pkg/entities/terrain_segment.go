package entities

import (
	"github.com/decker502/cavestrike/pkg/config"
)

// TerrainSegment 地形切片：一段固定宽度的竖直世界切面，
// 携带相互独立的顶部墙体高度和底部墙体高度
//
// X 为切片左边缘的屏幕坐标；WorldX 为创建时固定的世界绝对坐标，
// 高度由 WorldX 的噪声函数决定，相同世界位置必然得到相同形状。
// 切片由地形系统按序持有，移出左边界后从序列中回收即为销毁。
type TerrainSegment struct {
	X            float64 // 左边缘屏幕X坐标，随滚动每帧左移
	WorldX       float64 // 世界绝对X坐标，创建后不变
	Width        float64 // 切片宽度，恒为 TerrainSegmentWidth
	TopHeight    float64 // 顶部墙体高度（从屏幕顶部向下）
	BottomHeight float64 // 底部墙体高度（从屏幕底部向上）
}

// TopWall 返回顶部墙体的碰撞盒（中心对齐）
func (s *TerrainSegment) TopWall() Object {
	return Object{
		X:      s.X + s.Width/2,
		Y:      s.TopHeight / 2,
		Width:  s.Width,
		Height: s.TopHeight,
		Active: true,
	}
}

// BottomWall 返回底部墙体的碰撞盒（中心对齐）
func (s *TerrainSegment) BottomWall() Object {
	return Object{
		X:      s.X + s.Width/2,
		Y:      config.GameWindowHeight - s.BottomHeight/2,
		Width:  s.Width,
		Height: s.BottomHeight,
		Active: true,
	}
}

// CeilingY 返回走廊上边界（顶部墙体下缘）的屏幕Y坐标
func (s *TerrainSegment) CeilingY() float64 {
	return s.TopHeight
}

// FloorY 返回走廊下边界（底部墙体上缘）的屏幕Y坐标
func (s *TerrainSegment) FloorY() float64 {
	return config.GameWindowHeight - s.BottomHeight
}
