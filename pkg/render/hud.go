package render

import (
	"fmt"
	"strings"

	"github.com/gonewx/blockbattle/pkg/event"
	"github.com/gonewx/blockbattle/pkg/types"
)

// HUD 由事件驱动的抬头显示数据
// 只保存最近一次收到的值，绘制时不访问模拟状态
type HUD struct {
	Health     float64
	Wave       int
	Complete   bool
	BossHealth float64
	Points     int

	BuffLabel   string
	BuffSeconds int
	BuffNote    string

	Weapon event.WeaponPayload
	Ammo   event.AmmoPayload

	Message   string
	DebugText string

	GameOver     bool
	GameOverWave int

	ArmoryStage   event.ArmoryStage
	ArmoryOptions []string
}

// NewHUD 创建 HUD 并订阅所有相关事件
func NewHUD(d *event.Dispatcher) *HUD {
	h := &HUD{Health: 100, BossHealth: 100, BuffLabel: "None", ArmoryStage: event.ArmoryClosed}
	d.SubscribeAll(h,
		event.EventHealth, event.EventWave, event.EventBossHealth, event.EventPoints,
		event.EventBuff, event.EventMessage, event.EventDebug, event.EventWeapon,
		event.EventAmmo, event.EventGameOver, event.EventArmoryOpen,
	)
	return h
}

// OnEvent 实现 event.Listener
func (h *HUD) OnEvent(e event.Event) {
	switch p := e.Data.(type) {
	case event.HealthPayload:
		h.Health = p.Percent
		if p.Percent > 0 {
			h.GameOver = false
		}
	case event.WavePayload:
		h.Wave, h.Complete = p.Wave, p.Complete
		if !p.Complete {
			h.GameOver = false
		}
	case event.BossHealthPayload:
		h.BossHealth = p.Percent
	case event.PointsPayload:
		h.Points = p.Total
	case event.BuffPayload:
		h.BuffLabel, h.BuffSeconds = p.Label, p.Seconds
		if p.Note != "" {
			h.BuffNote = p.Note
		}
	case event.MessagePayload:
		h.Message = p.Text
	case event.DebugPayload:
		h.DebugText = p.Text
	case event.WeaponPayload:
		h.Weapon = p
	case event.AmmoPayload:
		h.Ammo = p
	case event.GameOverPayload:
		h.GameOver, h.GameOverWave = true, p.Wave
	case event.ArmoryPayload:
		h.ArmoryStage, h.ArmoryOptions = p.Stage, p.Options
	}
}

// ArmoryOpen 军械库是否打开
func (h *HUD) ArmoryOpen() bool {
	return h.ArmoryStage != event.ArmoryClosed
}

// StatusLines 左上角状态栏文字
func (h *HUD) StatusLines() []string {
	wave := fmt.Sprintf("Wave %d", h.Wave)
	if h.Complete {
		wave += " (complete)"
	}
	lines := []string{
		fmt.Sprintf("HP %3.0f%%   %s   Points %d", h.Health, wave, h.Points),
		h.weaponLine(),
		fmt.Sprintf("Spears %d   Bombs %d", h.Ammo.Spear, h.Ammo.Bombs),
	}
	if h.BossHealth < 100 {
		lines = append(lines, fmt.Sprintf("Boss %3.0f%%", h.BossHealth))
	}
	if h.BuffLabel != "" && h.BuffLabel != "None" {
		lines = append(lines, fmt.Sprintf("Buff: %s (%ds)", h.BuffLabel, h.BuffSeconds))
	}
	return lines
}

func (h *HUD) weaponLine() string {
	slot := func(name string, level int, active bool) string {
		if name == "" {
			name = "-"
		}
		s := fmt.Sprintf("%s Lv%d", name, level)
		if active {
			s = "[" + s + "]"
		}
		return s
	}
	w := h.Weapon
	return slot(w.Primary, w.PrimaryLevel, w.Active == types.SlotPrimary) + "  " +
		slot(w.Secondary, w.SecondaryLevel, w.Active == types.SlotSecondary)
}

// ArmoryLines 军械库菜单文字，选项以 1 开始编号
func (h *HUD) ArmoryLines() []string {
	if !h.ArmoryOpen() {
		return nil
	}
	title := "Choose primary weapon"
	if h.ArmoryStage == event.ArmorySecondary {
		title = "Choose secondary weapon"
	}
	lines := []string{title}
	for i, id := range h.ArmoryOptions {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, id))
	}
	lines = append(lines, "Enter: confirm   Backspace: back")
	return lines
}

// GameOverLines 结束画面文字
func (h *HUD) GameOverLines() []string {
	if !h.GameOver {
		return nil
	}
	return []string{
		fmt.Sprintf("Destroyed on wave %d", h.GameOverWave),
		"R: retry   Enter: return to armory",
	}
}

// DebugLines 调试计数文字
func (h *HUD) DebugLines() []string {
	if h.DebugText == "" {
		return nil
	}
	return strings.Split(h.DebugText, "\n")
}
