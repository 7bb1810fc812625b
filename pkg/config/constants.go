package config

// 游戏窗口与世界尺寸
// 逻辑分辨率固定为 800x480，Ebitengine 的 Layout 负责缩放到实际窗口
const (
	// GameWindowWidth 是游戏逻辑屏幕宽度（像素）
	GameWindowWidth = 800

	// GameWindowHeight 是游戏逻辑屏幕高度（像素）
	GameWindowHeight = 480
)

// 地形生成参数
const (
	// TerrainSegmentWidth 是单个地形切片的固定宽度（像素）
	// 切片序列从左到右无缝覆盖可见区域
	TerrainSegmentWidth = 20.0

	// TerrainMarginX 是可见区域右侧的预生成余量（像素）
	// 保证新切片在进入屏幕前已经存在
	TerrainMarginX = 40.0

	// TerrainEvictX 是切片回收阈值：position + width < TerrainEvictX 时销毁
	TerrainEvictX = -10.0
)

// 玩家参数
const (
	// PlayerWidth / PlayerHeight 是玩家机体的碰撞盒尺寸
	PlayerWidth  = 40.0
	PlayerHeight = 20.0

	// PlayerStartX 是玩家出生点的X坐标（Y为屏幕垂直中点）
	PlayerStartX = 120.0

	// PlayerSpeed 是玩家每帧移动速度（像素/帧）
	PlayerSpeed = 3.5

	// PlayerStartLives 是每局开始时的生命数
	PlayerStartLives = 3

	// PlayerMaxX 是玩家可以前进到的最右位置
	PlayerMaxX = GameWindowWidth * 0.6

	// PlayerMinX 是玩家可以后退到的最左位置
	PlayerMinX = 30.0

	// PlayerCorridorMargin 是玩家垂直移动时与平均走廊边界保持的间距
	PlayerCorridorMargin = 4.0
)

// 燃料系统参数
const (
	// FuelMax 是燃料上限，补给时钳制到该值
	FuelMax = 100.0

	// FuelDrainPerFrame 是每帧固定消耗的燃料量
	FuelDrainPerFrame = 0.05

	// FuelBailout 是坠毁重生后燃料的保底值（不满额补给）
	FuelBailout = 30.0

	// FuelEpsilon 用于把浮点累积误差内的余量吸附为精确的 0
	FuelEpsilon = 1e-9
)

// 武器与冷却参数（均以帧计数）
const (
	ShootCooldownFrames = 10
	BombCooldownFrames  = 35

	// InvincibleFrames 是受击后的无敌窗口长度
	InvincibleFrames = 120

	// PlayerBulletSpeed 是玩家子弹水平速度（向右）
	PlayerBulletSpeed  = 8.0
	PlayerBulletDamage = 1

	// EnemyBulletSpeed 是敌机子弹水平速度（向左，朝玩家一侧）
	EnemyBulletSpeed = 4.0

	// GroundBulletSpeed 是地面炮塔子弹垂直速度（向上）
	GroundBulletSpeed = 3.0

	BulletWidth  = 10.0
	BulletHeight = 4.0

	// BombForwardSpeed 是炸弹投出时的水平速度
	BombForwardSpeed = 2.5

	// BombGravity 是炸弹每帧累积的向下加速度（欧拉积分）
	BombGravity = 0.12

	BombWidth  = 12.0
	BombHeight = 8.0
)

// 敌机运动参数
const (
	// WaveAmplitude / WavePhaseStep 控制 wave 行为的正弦摆动
	WaveAmplitude = 20.0
	WavePhaseStep = 0.08

	// DiveDriftSpeed 是 dive 行为的每帧下沉速度
	DiveDriftSpeed = 0.9

	// SpawnCorridorMargin 是敌机生成时与安全走廊边界保持的间距
	// 走廊过窄（放不下敌机）时本帧直接跳过生成
	SpawnCorridorMargin = 16.0

	// SpawnOffscreenX 是生成点越过右边界的距离
	// 必须小于 TerrainMarginX，保证生成时脚下已有地形切片
	SpawnOffscreenX = 10.0
)

// 关卡推进参数
const (
	// StageTransitionFrames 是过场状态的固定停留帧数
	StageTransitionFrames = 120
)

// 爆炸粒子数量
const (
	// BurstDefault 是普通击毁的粒子数
	BurstDefault = 8

	// BurstBombTarget 是炸弹命中地面目标的加强爆炸粒子数
	BurstBombTarget = 12

	// BurstBombTerrain 是炸弹撞击地形的小型爆炸粒子数
	BurstBombTerrain = 6

	// BurstPlayerHit 是玩家被击中时的爆炸粒子数
	BurstPlayerHit = 10

	// BurstCrash 是玩家坠毁时的大型爆炸粒子数
	BurstCrash = 16
)

// 粒子寿命范围（帧）
const (
	ParticleMinLife = 20
	ParticleMaxLife = 40
)
