package game

import (
	"log"

	"github.com/decker502/cavestrike/pkg/config"
)

// State 游戏的顶层状态
type State int

const (
	StateStartScreen     State = iota // 标题画面，等待开始
	StatePlaying                      // 游玩中
	StatePaused                       // 暂停，模拟冻结
	StateStageTransition              // 过关停顿，固定帧数后推进关卡
	StateGameOver                     // 终态：生命耗尽
	StateVictory                      // 终态：通关全部关卡
)

// String 返回状态名称，用于日志输出
func (s State) String() string {
	switch s {
	case StateStartScreen:
		return "StartScreen"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateStageTransition:
		return "StageTransition"
	case StateGameOver:
		return "GameOver"
	case StateVictory:
		return "Victory"
	default:
		return "Unknown"
	}
}

// StatePayload 状态变更时附带的展示数据
type StatePayload struct {
	Score      int // 当前得分
	BestScore  int // 历史最高分（终态进入时已完成持久化）
	StageIndex int // 当前关卡索引
}

// StateObserver 状态变更回调
// 依次收到旧状态、新状态和展示数据；回调内不得反向驱动状态机
type StateObserver func(from, to State, payload StatePayload)

// GameState 顶层游戏状态机
//
// 持有本局的得分、关卡进度与滚动距离，并在进入终态时
// 通过注入的存储器持久化最高分。实体与地形归场景所有，
// 状态机只负责状态合法性与计分。不使用全局单例，由场景
// 显式持有实例。
type GameState struct {
	state State

	score     int
	bestScore int

	stageIndex int // 当前关卡索引
	stageCount int // 关卡总数

	distance        float64 // 本关已滚动距离（像素）
	transitionTimer int     // 过关停顿剩余帧数

	store    *ScoreStore   // 最高分存储器，可为 nil（降级模式）
	observer StateObserver // 状态变更回调，可为 nil
}

// NewGameState 创建初始状态机并读取历史最高分
//
// 参数：
//   - store: 最高分存储器，可为 nil（降级模式，最高分仅保留在内存中）
//   - stageCount: 关卡总数，决定通关判定
func NewGameState(store *ScoreStore, stageCount int) *GameState {
	gs := &GameState{
		state:      StateStartScreen,
		stageCount: stageCount,
		store:      store,
	}
	if store != nil {
		gs.bestScore = store.Load()
	}
	return gs
}

// SetObserver 设置状态变更回调
func (gs *GameState) SetObserver(observer StateObserver) {
	gs.observer = observer
}

// State 返回当前状态
func (gs *GameState) State() State {
	return gs.state
}

// Score 返回当前得分
func (gs *GameState) Score() int {
	return gs.score
}

// BestScore 返回历史最高分
func (gs *GameState) BestScore() int {
	return gs.bestScore
}

// StageIndex 返回当前关卡索引
func (gs *GameState) StageIndex() int {
	return gs.stageIndex
}

// Distance 返回本关已滚动距离
func (gs *GameState) Distance() float64 {
	return gs.distance
}

// TransitionRemaining 返回过关停顿的剩余帧数
func (gs *GameState) TransitionRemaining() int {
	return gs.transitionTimer
}

// AddScore 增加得分
// 得分只增不减，负值属于调用方错误，忽略并记录日志
func (gs *GameState) AddScore(points int) {
	if points < 0 {
		log.Printf("[GameState] 忽略负分: %d", points)
		return
	}
	gs.score += points
}

// AddDistance 累积本关滚动距离
func (gs *GameState) AddDistance(d float64) {
	gs.distance += d
}

// StageComplete 判断本关滚动距离是否已达到关卡长度
// 采用极小容差，避免浮点累积误差推迟恰好整帧数的过关判定
func (gs *GameState) StageComplete(stageLength float64) bool {
	return gs.distance+config.FuelEpsilon >= stageLength
}

// canTransition 判断状态迁移是否合法
//
// 合法迁移：
//   - StartScreen -> Playing
//   - Playing <-> Paused
//   - Playing -> StageTransition / GameOver
//   - StageTransition -> Playing / Victory
//   - GameOver / Victory -> StartScreen / Playing（外部重开）
func canTransition(from, to State) bool {
	switch from {
	case StateStartScreen:
		return to == StatePlaying
	case StatePlaying:
		return to == StatePaused || to == StateStageTransition || to == StateGameOver
	case StatePaused:
		return to == StatePlaying
	case StateStageTransition:
		return to == StatePlaying || to == StateVictory
	case StateGameOver, StateVictory:
		return to == StateStartScreen || to == StatePlaying
	}
	return false
}

// TransitionTo 执行状态迁移
//
// 非法迁移忽略并记录日志，不中断帧循环。
// 进入 StageTransition 时装载停顿计时；进入终态时无条件
// 尝试持久化最高分；迁移完成后通知观察者。
func (gs *GameState) TransitionTo(to State) {
	from := gs.state
	if from == to {
		return
	}
	if !canTransition(from, to) {
		log.Printf("[GameState] 忽略非法状态迁移: %s -> %s", from, to)
		return
	}

	gs.state = to
	log.Printf("[GameState] 状态迁移: %s -> %s", from, to)

	switch to {
	case StateStageTransition:
		gs.transitionTimer = config.StageTransitionFrames
	case StateGameOver, StateVictory:
		gs.persistBest()
	}

	if gs.observer != nil {
		gs.observer(from, to, StatePayload{
			Score:      gs.score,
			BestScore:  gs.bestScore,
			StageIndex: gs.stageIndex,
		})
	}
}

// TickTransition 推进过关停顿一帧
//
// 停顿结束时推进关卡索引：还有下一关则清零距离并回到
// Playing，返回 true；已是最后一关则进入 Victory，同样返回
// true。停顿未结束返回 false。
func (gs *GameState) TickTransition() bool {
	if gs.state != StateStageTransition {
		return false
	}

	if gs.transitionTimer > 0 {
		gs.transitionTimer--
	}
	if gs.transitionTimer > 0 {
		return false
	}

	gs.stageIndex++
	if gs.stageIndex >= gs.stageCount {
		gs.TransitionTo(StateVictory)
	} else {
		gs.distance = 0
		gs.TransitionTo(StatePlaying)
	}
	return true
}

// ResetRun 丢弃本局进度，回到第一关的初始计分状态
// 最高分保留；状态本身由调用方随后迁移
func (gs *GameState) ResetRun() {
	gs.score = 0
	gs.stageIndex = 0
	gs.distance = 0
	gs.transitionTimer = 0
}

// SetStageIndex 设置起始关卡索引，越界值收束到合法范围
//
// 仅供新一局开始前使用（启动参数选关）；局内的关卡推进
// 只能经由 TickTransition 完成。
func (gs *GameState) SetStageIndex(index int) {
	if index < 0 {
		index = 0
	}
	if gs.stageCount > 0 && index >= gs.stageCount {
		index = gs.stageCount - 1
	}
	gs.stageIndex = index
}

// FlushBest 立即尝试持久化最高分
// 供窗口关闭等外部退出路径调用；正常进入终态时无需调用
func (gs *GameState) FlushBest() {
	gs.persistBest()
}

// persistBest 在当前得分刷新纪录时写入存储
func (gs *GameState) persistBest() {
	if gs.score <= gs.bestScore {
		return
	}
	gs.bestScore = gs.score

	if gs.store == nil {
		return
	}
	if err := gs.store.Save(gs.bestScore); err != nil {
		log.Printf("[GameState] Warning: Failed to save best score: %v", err)
	}
}
