// Package entities 定义游戏中的实体模型
//
// 实体不使用继承层次：所有种类（玩家、敌机、地面目标、子弹、炸弹、
// 粒子、地形切片）共享嵌入的 Object 数据结构，种类相关的行为由
// 各自的类型和调用方的分类循环派发。
package entities

// Object 是所有可碰撞实体共享的基础数据
// 坐标为碰撞盒中心，尺寸恒为非负
type Object struct {
	X      float64 // 碰撞盒中心X坐标
	Y      float64 // 碰撞盒中心Y坐标
	Width  float64 // 碰撞盒宽度
	Height float64 // 碰撞盒高度
	Active bool    // 存活标志：false 表示已销毁，等待惰性回收
}

// Left 返回碰撞盒左边界
func (o *Object) Left() float64 { return o.X - o.Width/2 }

// Right 返回碰撞盒右边界
func (o *Object) Right() float64 { return o.X + o.Width/2 }

// Top 返回碰撞盒上边界
func (o *Object) Top() float64 { return o.Y - o.Height/2 }

// Bottom 返回碰撞盒下边界
func (o *Object) Bottom() float64 { return o.Y + o.Height/2 }

// Deactivate 标记实体为已销毁
// 销毁是终态：一个实体至多经历一次 Active 由 true 变 false
func (o *Object) Deactivate() {
	o.Active = false
}

// CollidesWith 检查两个实体的AABB（轴对齐边界框）是否发生碰撞
// 碰撞盒中心对齐实体位置；任一方已销毁时恒为 false
func (o *Object) CollidesWith(other *Object) bool {
	if !o.Active || !other.Active {
		return false
	}

	// 计算第一个碰撞盒的边界（中心对齐）
	left1 := o.X - o.Width/2
	right1 := o.X + o.Width/2
	top1 := o.Y - o.Height/2
	bottom1 := o.Y + o.Height/2

	// 计算第二个碰撞盒的边界（中心对齐）
	left2 := other.X - other.Width/2
	right2 := other.X + other.Width/2
	top2 := other.Y - other.Height/2
	bottom2 := other.Y + other.Height/2

	// AABB碰撞检测：任一轴上没有重叠即没有碰撞
	return right1 >= left2 &&
		left1 <= right2 &&
		bottom1 >= top2 &&
		top1 <= bottom2
}
