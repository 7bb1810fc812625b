package entities

import (
	"math"

	"github.com/decker502/cavestrike/pkg/config"
)

// Player 玩家机体
// 拥有生命、燃料、射击/投弹冷却与受击无敌窗口
type Player struct {
	Object

	Lives int     // 剩余生命，归零时本局结束
	Fuel  float64 // 燃料，[0, FuelMax]，每帧固定消耗

	ShootCooldown int // 射击冷却剩余帧数
	BombCooldown  int // 投弹冷却剩余帧数

	Invincible      bool // 无敌标志：战斗受击免疫，地形/燃料坠毁不免疫
	InvincibleTimer int  // 无敌剩余帧数

	// 出生点，坠毁重生时复位到这里
	StartX float64
	StartY float64
}

// NewPlayer 创建一个位于出生点的满状态玩家
func NewPlayer() *Player {
	startX := config.PlayerStartX
	startY := float64(config.GameWindowHeight) / 2
	return &Player{
		Object: Object{
			X:      startX,
			Y:      startY,
			Width:  config.PlayerWidth,
			Height: config.PlayerHeight,
			Active: true,
		},
		Lives:  config.PlayerStartLives,
		Fuel:   config.FuelMax,
		StartX: startX,
		StartY: startY,
	}
}

// FuelEmpty 返回燃料是否已耗尽
// 在每帧推进前检查：上一帧结束时燃料归零，下一帧触发坠毁
func (p *Player) FuelEmpty() bool {
	return p.Fuel <= 0
}

// Update 推进玩家一帧：按输入方向移动并钳制在走廊内，
// 消耗燃料，递减冷却与无敌计时
//
// 参数：
//   - dx, dy: 输入方向（-1/0/1），内部乘以移动速度
//   - corridorTop, corridorBottom: 当前平均安全走廊的上下边界（屏幕Y）
func (p *Player) Update(dx, dy float64, corridorTop, corridorBottom float64) {
	p.X += dx * config.PlayerSpeed
	p.Y += dy * config.PlayerSpeed

	// 水平范围固定，垂直范围由平均走廊约束
	// 局部地形仍可能越过平均边界，墙体碰撞另行判定
	p.X = clamp(p.X, config.PlayerMinX, config.PlayerMaxX)
	minY := corridorTop + config.PlayerCorridorMargin + p.Height/2
	maxY := corridorBottom - config.PlayerCorridorMargin - p.Height/2
	if minY < maxY {
		p.Y = clamp(p.Y, minY, maxY)
	}

	// 燃料固定消耗；浮点累积误差吸附到精确的 0，且永不为负
	p.Fuel -= config.FuelDrainPerFrame
	if p.Fuel < config.FuelEpsilon {
		p.Fuel = 0
	}

	if p.ShootCooldown > 0 {
		p.ShootCooldown--
	}
	if p.BombCooldown > 0 {
		p.BombCooldown--
	}

	if p.InvincibleTimer > 0 {
		p.InvincibleTimer--
		if p.InvincibleTimer == 0 {
			p.Invincible = false
		}
	}
}

// TryShoot 尝试射击，冷却未结束时返回 false
// 成功时重置冷却，由调用方生成子弹
func (p *Player) TryShoot() bool {
	if p.ShootCooldown > 0 {
		return false
	}
	p.ShootCooldown = config.ShootCooldownFrames
	return true
}

// TryBomb 尝试投弹，冷却未结束时返回 false
func (p *Player) TryBomb() bool {
	if p.BombCooldown > 0 {
		return false
	}
	p.BombCooldown = config.BombCooldownFrames
	return true
}

// AddFuel 补给燃料，钳制到上限
func (p *Player) AddFuel(amount float64) {
	p.Fuel = math.Min(p.Fuel+amount, config.FuelMax)
}

// HitByCombat 处理战斗受击（敌方子弹或机体相撞）
// 无敌期间完全忽略：不扣生命也不重置无敌计时，返回 false
// 否则扣一条生命并开启无敌窗口，返回 true
func (p *Player) HitByCombat() bool {
	if p.Invincible {
		return false
	}

	p.Lives--
	p.Invincible = true
	p.InvincibleTimer = config.InvincibleFrames
	return true
}

// Crash 处理地形撞击或燃料耗尽坠毁
// 无论是否无敌都扣一条生命；若仍有生命，复位到出生点、
// 授予无敌窗口并把燃料保底到 FuelBailout（不满额补给）
func (p *Player) Crash() {
	p.Lives--
	if p.Lives <= 0 {
		return
	}

	p.X = p.StartX
	p.Y = p.StartY
	p.Invincible = true
	p.InvincibleTimer = config.InvincibleFrames
	p.Fuel = math.Max(p.Fuel, config.FuelBailout)
}

// clamp 把 v 钳制到 [min, max]
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
