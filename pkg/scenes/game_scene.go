package scenes

import (
	"image/color"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/cavestrike/pkg/config"
	"github.com/decker502/cavestrike/pkg/entities"
	"github.com/decker502/cavestrike/pkg/game"
	"github.com/decker502/cavestrike/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// crashBurstColor 坠毁爆炸的粒子颜色
var crashBurstColor = color.RGBA{R: 255, G: 120, B: 40, A: 255}

// GameScene 游玩场景，持有一局游戏的全部模拟状态
//
// 每帧按固定顺序推进：输入采样、世界滚动、玩家推进、生成、
// 实体运动与开火、碰撞结算、坠毁结算、过关判定。顺序固定，
// 同一随机种子下逐帧可复现。实体与地形归场景所有，状态机
// 只负责状态合法性与计分。
type GameScene struct {
	sceneManager *game.SceneManager
	state        *game.GameState

	stages []config.StageConfig
	units  *config.UnitTable
	rng    *rand.Rand

	terrain   *systems.TerrainSystem
	spawner   *systems.SpawnSystem
	particles *systems.ParticleSystem
	combat    *systems.CombatSystem

	player  *entities.Player
	enemies []*entities.Enemy
	targets []*entities.GroundTarget
	bullets []*entities.Bullet
	bombs   []*entities.Bomb

	// 输入采集钩子，默认读键盘；无窗口驱动时可替换
	readInput func() game.InputState

	frameCount int  // 本场景累计帧数，驱动无敌闪烁等渲染效果
	debugInfo  bool // F3 切换的调试信息开关
}

// NewGameScene 创建游玩场景并进入 state 当前索引指向的关卡
//
// 调用方（场景工厂）负责先把 state 归位到新一局的初始计分，
// 本构造只装载关卡并把状态推进到 Playing。
//
// 参数：
//   - sceneManager: 场景管理器，用于返回标题画面
//   - state: 状态机，本局计分与状态归它管理
//   - stages: 关卡配置表
//   - units: 单位属性表
//   - rng: 随机源，为 nil 时以当前时间播种
func NewGameScene(sceneManager *game.SceneManager, state *game.GameState,
	stages []config.StageConfig, units *config.UnitTable, rng *rand.Rand) *GameScene {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &GameScene{
		sceneManager: sceneManager,
		state:        state,
		stages:       stages,
		units:        units,
		rng:          rng,
		player:       entities.NewPlayer(),
		readInput:    game.ReadKeyboard,
	}
	s.particles = systems.NewParticleSystem(rng)
	s.spawner = systems.NewSpawnSystem(rng, units)
	s.combat = systems.NewCombatSystem(state, s.particles)
	s.initStage(state.StageIndex())

	if state.State() != game.StatePlaying {
		state.TransitionTo(game.StatePlaying)
	}
	return s
}

// initStage 装载关卡：重建地形，清空场上实体，复位玩家位置
// 生命与燃料跨关卡保留；过场期间未燃尽的爆炸粒子也保留
func (s *GameScene) initStage(index int) {
	stage := config.StageAt(s.stages, index)
	s.terrain = systems.NewTerrainSystem(stage, s.rng)
	s.enemies = nil
	s.targets = nil
	s.bullets = nil
	s.bombs = nil
	s.player.X = s.player.StartX
	s.player.Y = s.player.StartY
	log.Printf("[GameScene] 进入关卡 %d: %s", index+1, stage.Name)
}

// Update 按当前状态推进一帧
//
// 模拟以固定帧为单位推进，不依赖 deltaTime（Ebiten 的 Tick
// 频率恒定）。暂停、过场与终态下模拟冻结，只有粒子继续衰减。
func (s *GameScene) Update(deltaTime float64) {
	s.frameCount++

	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		s.debugInfo = !s.debugInfo
	}

	switch s.state.State() {
	case game.StatePlaying:
		if pauseKeyPressed() {
			s.state.TransitionTo(game.StatePaused)
			s.particles.Update()
			return
		}
		s.updatePlaying()

	case game.StatePaused:
		s.particles.Update()
		if pauseKeyPressed() {
			s.state.TransitionTo(game.StatePlaying)
		}

	case game.StateStageTransition:
		s.particles.Update()
		if s.state.TickTransition() && s.state.State() == game.StatePlaying {
			s.initStage(s.state.StageIndex())
		}

	case game.StateGameOver, game.StateVictory:
		s.particles.Update()
		s.handleTerminalInput()
	}
}

// updatePlaying 推进一个游玩帧
func (s *GameScene) updatePlaying() {
	stage := config.StageAt(s.stages, s.state.StageIndex())

	// 1. 输入采样，本帧内不再回读
	in := s.readInput()

	// 2. 世界滚动
	s.terrain.Update(stage.ScrollSpeed)
	s.state.AddDistance(stage.ScrollSpeed)

	// 3. 玩家推进；上一帧耗尽的燃料在本帧坠毁结算
	if s.player.FuelEmpty() {
		s.crashPlayer("fuel")
		return
	}
	corridorTop, corridorBottom := s.terrain.SafeZone()
	s.player.Update(in.DX(), in.DY(), corridorTop, corridorBottom)

	if in.Shoot && s.player.TryShoot() {
		s.bullets = append(s.bullets, entities.NewPlayerBullet(s.player.Right()+2, s.player.Y))
	}
	if in.Bomb && s.player.TryBomb() {
		s.bombs = append(s.bombs, entities.NewBomb(s.player.X, s.player.Bottom()+2))
	}

	// 4. 按密度生成敌机与地面目标
	spawned := s.spawner.Update(stage, s.terrain)
	s.enemies = append(s.enemies, spawned.Enemies...)
	s.targets = append(s.targets, spawned.Targets...)

	// 5. 实体运动与开火
	s.advanceEntities(stage.ScrollSpeed)
	s.particles.Update()

	// 6. 碰撞结算，可能触发 GameOver
	s.combat.Resolve(s.player, s.bullets, s.bombs, s.enemies, s.targets, s.terrain)
	if s.state.State() != game.StatePlaying {
		s.compact()
		return
	}

	// 7. 地形撞击结算
	if hit := s.terrain.CheckCollision(&s.player.Object); hit != systems.WallNone {
		s.crashPlayer(hit.String())
		if s.state.State() != game.StatePlaying {
			s.compact()
			return
		}
	}

	// 8. 过关判定
	if s.state.StageComplete(stage.Length) {
		s.state.TransitionTo(game.StateStageTransition)
	}

	s.compact()
}

// advanceEntities 推进敌机、地面目标与弹体，并结算开火试验
// 遍历顺序固定，保证随机流逐帧可复现
func (s *GameScene) advanceEntities(scrollSpeed float64) {
	for _, e := range s.enemies {
		if !e.Active {
			continue
		}
		e.Update(scrollSpeed)
		if e.Active && s.rng.Float64() < e.ShootChance {
			s.bullets = append(s.bullets, entities.NewEnemyBullet(e.Left()-2, e.Y))
		}
	}

	for _, t := range s.targets {
		if !t.Active {
			continue
		}
		t.Update(scrollSpeed)
		if t.Active && s.rng.Float64() < t.ShootChance {
			s.bullets = append(s.bullets, entities.NewGroundBullet(t.X, t.Top()-2))
		}
	}

	for _, b := range s.bullets {
		b.Update()
	}
	for _, b := range s.bombs {
		b.Update()
	}
}

// crashPlayer 结算一次坠毁（地形撞击或燃料耗尽）
// 生命耗尽时进入 GameOver，否则玩家已在出生点重生
func (s *GameScene) crashPlayer(reason string) {
	s.particles.SpawnBurst(s.player.X, s.player.Y, config.BurstCrash, crashBurstColor)
	s.player.Crash()
	log.Printf("[GameScene] 坠毁(%s), 剩余生命 %d", reason, s.player.Lives)

	if s.player.Lives <= 0 {
		s.player.Deactivate()
		s.state.TransitionTo(game.StateGameOver)
	}
}

// compact 保序剔除已失效实体并置空尾部引用，避免残留指针
func (s *GameScene) compact() {
	keptEnemies := s.enemies[:0]
	for _, e := range s.enemies {
		if e.Active {
			keptEnemies = append(keptEnemies, e)
		}
	}
	for i := len(keptEnemies); i < len(s.enemies); i++ {
		s.enemies[i] = nil
	}
	s.enemies = keptEnemies

	keptTargets := s.targets[:0]
	for _, t := range s.targets {
		if t.Active {
			keptTargets = append(keptTargets, t)
		}
	}
	for i := len(keptTargets); i < len(s.targets); i++ {
		s.targets[i] = nil
	}
	s.targets = keptTargets

	keptBullets := s.bullets[:0]
	for _, b := range s.bullets {
		if b.Active {
			keptBullets = append(keptBullets, b)
		}
	}
	for i := len(keptBullets); i < len(s.bullets); i++ {
		s.bullets[i] = nil
	}
	s.bullets = keptBullets

	keptBombs := s.bombs[:0]
	for _, b := range s.bombs {
		if b.Active {
			keptBombs = append(keptBombs, b)
		}
	}
	for i := len(keptBombs); i < len(s.bombs); i++ {
		s.bombs[i] = nil
	}
	s.bombs = keptBombs
}

// handleTerminalInput 处理终态下的重开与返回标题
func (s *GameScene) handleTerminalInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.restartRun()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.exitToTitle()
	}
}

// restartRun 在本场景内重开一局：清空计分与实体，回到第一关
func (s *GameScene) restartRun() {
	log.Printf("[GameScene] 重新开始")
	s.state.ResetRun()
	s.player = entities.NewPlayer()
	s.particles.Reset()
	s.initStage(0)
	s.state.TransitionTo(game.StatePlaying)
}

// exitToTitle 放弃本局，返回标题画面
func (s *GameScene) exitToTitle() {
	s.state.ResetRun()
	s.state.TransitionTo(game.StateStartScreen)
	s.sceneManager.SwitchTo(NewTitleScene(s.sceneManager, s.state, 0))
}

// pauseKeyPressed 返回本帧是否按下了暂停键
func pauseKeyPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}

// SetInputReader 替换每帧的输入采样函数
// 供无窗口模拟工具注入脚本化输入；传入 nil 恢复键盘采样
func (s *GameScene) SetInputReader(reader func() game.InputState) {
	if reader == nil {
		s.readInput = game.ReadKeyboard
		return
	}
	s.readInput = reader
}

// Snapshot 构建本帧的只读渲染快照
// 快照与场景共享底层实体，仅在本帧内有效
func (s *GameScene) Snapshot() game.Snapshot {
	stage := config.StageAt(s.stages, s.state.StageIndex())
	return game.Snapshot{
		State:               s.state.State(),
		Score:               s.state.Score(),
		BestScore:           s.state.BestScore(),
		StageIndex:          s.state.StageIndex(),
		StageName:           stage.Name,
		Distance:            s.state.Distance(),
		Lives:               s.player.Lives,
		Fuel:                s.player.Fuel,
		Player:              s.player,
		Enemies:             s.enemies,
		Targets:             s.targets,
		Bullets:             s.bullets,
		Bombs:               s.bombs,
		Particles:           s.particles.Particles(),
		Segments:            s.terrain.Segments(),
		TransitionRemaining: s.state.TransitionRemaining(),
	}
}

// SaveOnExit 在窗口关闭时把可能刷新的最高分落盘
func (s *GameScene) SaveOnExit() bool {
	s.state.FlushBest()
	return true
}
