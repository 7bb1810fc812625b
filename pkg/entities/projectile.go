package entities

import (
	"github.com/decker502/cavestrike/pkg/config"
)

// Bullet 子弹
// 方向在创建时由归属方确定：玩家子弹向右，敌机子弹向左，地面子弹向上
type Bullet struct {
	Object

	VX         float64 // 水平速度（像素/帧）
	VY         float64 // 垂直速度（像素/帧）
	FromPlayer bool    // 归属标志：true 为玩家子弹
	Damage     int     // 命中伤害
}

// NewPlayerBullet 创建一发向右飞行的玩家子弹
func NewPlayerBullet(x, y float64) *Bullet {
	return &Bullet{
		Object: Object{
			X:      x,
			Y:      y,
			Width:  config.BulletWidth,
			Height: config.BulletHeight,
			Active: true,
		},
		VX:         config.PlayerBulletSpeed,
		FromPlayer: true,
		Damage:     config.PlayerBulletDamage,
	}
}

// NewEnemyBullet 创建一发向左（朝玩家一侧）飞行的敌机子弹
func NewEnemyBullet(x, y float64) *Bullet {
	return &Bullet{
		Object: Object{
			X:      x,
			Y:      y,
			Width:  config.BulletWidth,
			Height: config.BulletHeight,
			Active: true,
		},
		VX:     -config.EnemyBulletSpeed,
		Damage: 1,
	}
}

// NewGroundBullet 创建一发向上飞行的地面炮塔子弹
func NewGroundBullet(x, y float64) *Bullet {
	return &Bullet{
		Object: Object{
			X: x,
			Y: y,
			// 垂直飞行，碰撞盒转为竖置
			Width:  config.BulletHeight,
			Height: config.BulletWidth,
			Active: true,
		},
		VY:     -config.GroundBulletSpeed,
		Damage: 1,
	}
}

// Update 匀速直线推进，离开任意屏幕边界即销毁
func (b *Bullet) Update() {
	if !b.Active {
		return
	}

	b.X += b.VX
	b.Y += b.VY

	if b.Right() < 0 || b.Left() > config.GameWindowWidth ||
		b.Bottom() < 0 || b.Top() > config.GameWindowHeight {
		b.Deactivate()
	}
}

// Bomb 炸弹
// 水平匀速前进，垂直方向受重力加速（欧拉积分）
type Bomb struct {
	Object

	VX     float64 // 水平速度
	VY     float64 // 垂直速度，每帧累积重力
	Damage int
}

// NewBomb 在指定位置投下一枚炸弹
func NewBomb(x, y float64) *Bomb {
	return &Bomb{
		Object: Object{
			X:      x,
			Y:      y,
			Width:  config.BombWidth,
			Height: config.BombHeight,
			Active: true,
		},
		VX:     config.BombForwardSpeed,
		Damage: 1,
	}
}

// Update 先累积重力再积分位置，飞出屏幕即销毁
// 撞击地形的销毁由碰撞阶段处理
func (b *Bomb) Update() {
	if !b.Active {
		return
	}

	b.VY += config.BombGravity
	b.X += b.VX
	b.Y += b.VY

	if b.Right() < 0 || b.Left() > config.GameWindowWidth ||
		b.Top() > config.GameWindowHeight || b.Bottom() < 0 {
		b.Deactivate()
	}
}
