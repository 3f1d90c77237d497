package components

// LifetimeComponent 倒地窗口
// 敌人被击败后保留 Window 秒供渲染倒地姿态，到期后由 LifetimeSystem 销毁
type LifetimeComponent struct {
	Window  float64 // 倒地保留时长(秒)
	Elapsed float64 // 已倒地时长(秒)
	Expired bool
}
