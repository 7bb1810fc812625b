package systems

import (
	"image/color"
	"log"

	"github.com/decker502/cavestrike/pkg/config"
	"github.com/decker502/cavestrike/pkg/entities"
	"github.com/decker502/cavestrike/pkg/game"
)

// 非实体来源的爆炸颜色
var (
	playerHitColor     = color.RGBA{R: 255, G: 200, B: 80, A: 255}  // 玩家受击
	terrainImpactColor = color.RGBA{R: 168, G: 148, B: 120, A: 255} // 炸弹撞山
)

// CombatSystem 碰撞与战斗结算系统
//
// 每帧在所有运动推进完成后执行一次，按固定的类别顺序结算：
//
//  1. 玩家子弹 × 敌机
//  2. 炸弹 × 地面目标
//  3. 玩家子弹 × 地面目标
//  4. 敌方子弹 × 玩家
//  5. 玩家机体 × 敌机
//
// 顺序即同帧多重命中的裁决规则：每个弹体在类别循环内命中
// 第一个目标后立即失效并跳出，后续类别对它的检查因失效而
// 自然落空，同一帧不会产生双重结算。炸弹与地形的碰撞独立
// 于类别顺序，在最后单独检查。
type CombatSystem struct {
	state     *game.GameState
	particles *ParticleSystem
}

// NewCombatSystem 创建战斗结算系统
//
// 参数：
//   - state: 状态机，用于计分和触发 GameOver
//   - particles: 粒子系统，用于爆炸效果
func NewCombatSystem(state *game.GameState, particles *ParticleSystem) *CombatSystem {
	return &CombatSystem{
		state:     state,
		particles: particles,
	}
}

// Resolve 执行本帧的全部碰撞结算
func (cs *CombatSystem) Resolve(
	player *entities.Player,
	bullets []*entities.Bullet,
	bombs []*entities.Bomb,
	enemies []*entities.Enemy,
	targets []*entities.GroundTarget,
	terrain *TerrainSystem,
) {
	cs.playerBulletsVsEnemies(bullets, enemies)
	cs.bombsVsTargets(player, bombs, targets)
	cs.playerBulletsVsTargets(player, bullets, targets)
	cs.hostileBulletsVsPlayer(player, bullets)
	cs.playerVsEnemies(player, enemies)
	cs.bombsVsTerrain(bombs, terrain)
}

// playerBulletsVsEnemies 玩家子弹命中敌机
// 命中即失效并结算伤害，击毁时计分并爆炸
func (cs *CombatSystem) playerBulletsVsEnemies(bullets []*entities.Bullet, enemies []*entities.Enemy) {
	for _, b := range bullets {
		if !b.Active || !b.FromPlayer {
			continue
		}
		for _, e := range enemies {
			if !b.CollidesWith(&e.Object) {
				continue
			}

			b.Deactivate()
			if e.TakeDamage(b.Damage) {
				e.Deactivate()
				cs.state.AddScore(e.Points)
				cs.particles.SpawnBurst(e.X, e.Y, config.BurstDefault, e.Color)
			}
			break
		}
	}
}

// bombsVsTargets 炸弹命中地面目标
// 双方失效，计分，加强爆炸；目标带燃料补给时为玩家加油
func (cs *CombatSystem) bombsVsTargets(player *entities.Player, bombs []*entities.Bomb, targets []*entities.GroundTarget) {
	for _, b := range bombs {
		if !b.Active {
			continue
		}
		for _, t := range targets {
			if !b.CollidesWith(&t.Object) {
				continue
			}

			b.Deactivate()
			cs.destroyTarget(player, t, config.BurstBombTarget)
			break
		}
	}
}

// playerBulletsVsTargets 玩家子弹命中地面目标
// 结算与炸弹相同，但爆炸为普通规模
func (cs *CombatSystem) playerBulletsVsTargets(player *entities.Player, bullets []*entities.Bullet, targets []*entities.GroundTarget) {
	for _, b := range bullets {
		if !b.Active || !b.FromPlayer {
			continue
		}
		for _, t := range targets {
			if !b.CollidesWith(&t.Object) {
				continue
			}

			b.Deactivate()
			cs.destroyTarget(player, t, config.BurstDefault)
			break
		}
	}
}

// destroyTarget 击毁一个地面目标的公共结算
func (cs *CombatSystem) destroyTarget(player *entities.Player, t *entities.GroundTarget, burst int) {
	t.Deactivate()
	cs.state.AddScore(t.Points)
	cs.particles.SpawnBurst(t.X, t.Y, burst, t.Color)

	if t.Fuel > 0 {
		player.AddFuel(t.Fuel)
		log.Printf("[Combat] 补给燃料 %.0f, 当前 %.1f", t.Fuel, player.Fuel)
	}
}

// hostileBulletsVsPlayer 敌方子弹命中玩家
func (cs *CombatSystem) hostileBulletsVsPlayer(player *entities.Player, bullets []*entities.Bullet) {
	for _, b := range bullets {
		if !b.Active || b.FromPlayer {
			continue
		}
		if !b.CollidesWith(&player.Object) {
			continue
		}

		b.Deactivate()
		cs.resolvePlayerHit(player)
		break
	}
}

// playerVsEnemies 玩家机体与敌机相撞
// 敌机直接被摧毁（爆炸但不计分），玩家走受击结算
func (cs *CombatSystem) playerVsEnemies(player *entities.Player, enemies []*entities.Enemy) {
	for _, e := range enemies {
		if !player.CollidesWith(&e.Object) {
			continue
		}

		e.Deactivate()
		cs.particles.SpawnBurst(e.X, e.Y, config.BurstDefault, e.Color)
		cs.resolvePlayerHit(player)
		break
	}
}

// bombsVsTerrain 炸弹撞击地形
// 小型爆炸后失效，不计分；与类别顺序无关，每帧独立检查
func (cs *CombatSystem) bombsVsTerrain(bombs []*entities.Bomb, terrain *TerrainSystem) {
	for _, b := range bombs {
		if !b.Active {
			continue
		}
		if terrain.CheckCollision(&b.Object) == WallNone {
			continue
		}

		cs.particles.SpawnBurst(b.X, b.Y, config.BurstBombTerrain, terrainImpactColor)
		b.Deactivate()
	}
}

// resolvePlayerHit 玩家战斗受击结算
//
// 无敌期间完全忽略；否则扣生命、爆炸并开启无敌窗口，
// 生命耗尽时进入 GameOver
func (cs *CombatSystem) resolvePlayerHit(player *entities.Player) {
	if !player.HitByCombat() {
		return
	}

	cs.particles.SpawnBurst(player.X, player.Y, config.BurstPlayerHit, playerHitColor)
	log.Printf("[Combat] 玩家受击, 剩余生命 %d", player.Lives)

	if player.Lives <= 0 {
		player.Deactivate()
		cs.state.TransitionTo(game.StateGameOver)
	}
}
