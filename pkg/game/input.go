package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// InputState 单帧输入快照
//
// 模拟核心每帧读取一次，读取后不再回写输入来源。
// 方向与开火为持续按住语义；暂停、重开等单次触发按键
// 由场景直接查询 inpututil，不经过这里。
type InputState struct {
	Up    bool // 上移
	Down  bool // 下移
	Left  bool // 左移
	Right bool // 右移
	Shoot bool // 射击
	Bomb  bool // 投弹
}

// DX 返回水平输入方向（-1/0/1）
func (in InputState) DX() float64 {
	dx := 0.0
	if in.Left {
		dx -= 1
	}
	if in.Right {
		dx += 1
	}
	return dx
}

// DY 返回垂直输入方向（-1/0/1）
func (in InputState) DY() float64 {
	dy := 0.0
	if in.Up {
		dy -= 1
	}
	if in.Down {
		dy += 1
	}
	return dy
}

// ReadKeyboard 采集当前帧的键盘输入
//
// 方向键与 WASD 等价；射击为空格或 J，投弹为 B 或 K
func ReadKeyboard() InputState {
	return InputState{
		Up:    ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		Down:  ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS),
		Left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right: ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Shoot: ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyJ),
		Bomb:  ebiten.IsKeyPressed(ebiten.KeyB) || ebiten.IsKeyPressed(ebiten.KeyK),
	}
}
