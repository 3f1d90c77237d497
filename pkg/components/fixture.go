package components

import "github.com/gonewx/blockbattle/pkg/config"

// FixtureKind 场景设施种类
type FixtureKind int

const (
	FixtureNextWavePad FixtureKind = iota
	FixtureUpgradePad
	FixtureSwitchPad
	FixtureReturnPortal
	FixtureDummy
)

// String 返回设施名称
func (k FixtureKind) String() string {
	switch k {
	case FixtureNextWavePad:
		return "next_wave_pad"
	case FixtureUpgradePad:
		return "upgrade_pad"
	case FixtureSwitchPad:
		return "switch_pad"
	case FixtureReturnPortal:
		return "return_portal"
	case FixtureDummy:
		return "dummy"
	default:
		return "unknown"
	}
}

// FixtureComponent 静态设施
// InLobby 为 true 的设施随大厅原点平移
type FixtureComponent struct {
	Kind    FixtureKind
	InLobby bool
	Offset  config.Offset // 相对大厅原点的偏移
	Visible bool
}
