package components

// Pose 模型姿态
type Pose int

const (
	PoseUpright Pose = iota
	PoseToppled      // 玩家被放屁道具放倒或死亡
	PoseFallen       // 敌人被击败后的倒地姿态
)

// PoseComponent 渲染用姿态
type PoseComponent struct {
	Pose Pose
}
