package components

// FlashEffectComponent 受击闪白标记
// 存在期间渲染器按 Intensity 把实体材质混向白色，恢复由延迟回调移除该组件
type FlashEffectComponent struct {
	// Duration 闪烁持续时间（秒）
	Duration float64

	// Elapsed 已闪烁时间（秒）
	Elapsed float64

	// Intensity 闪烁强度（0.0 - 1.0）
	Intensity float64
}
