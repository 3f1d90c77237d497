package systems

import (
	"fmt"
	"math"

	"github.com/gonewx/blockbattle/pkg/components"
	"github.com/gonewx/blockbattle/pkg/config"
	"github.com/gonewx/blockbattle/pkg/ecs"
	"github.com/gonewx/blockbattle/pkg/event"
	"github.com/gonewx/blockbattle/pkg/game"
)

const (
	buffHUDCategory  = "buff-hud"
	fartPoseCategory = "fart-pose"
	noBuffLabel      = "None"
)

// BuffSystem 玩家增益计时
//
// 每帧把所有增益计时减少 dt 并钳制到 0；体型增益到期时把倍率和缩放恢复为 1。
// HUD 标签显示最近一次拾取的道具和剩余秒数，到期由延迟回调重置为 "None"
type BuffSystem struct {
	state *game.SimulationState

	lastSeconds int
}

// NewBuffSystem 创建增益系统
func NewBuffSystem(state *game.SimulationState) *BuffSystem {
	return &BuffSystem{state: state}
}

func (s *BuffSystem) components() (*components.BuffComponent, *components.ModifierComponent, bool) {
	em := s.state.EntityManager
	buffs, ok := ecs.GetComponent[*components.BuffComponent](em, s.state.PlayerID)
	if !ok {
		return nil, nil, false
	}
	mods, ok := ecs.GetComponent[*components.ModifierComponent](em, s.state.PlayerID)
	if !ok {
		return nil, nil, false
	}
	return buffs, mods, true
}

// Update 推进增益计时
func (s *BuffSystem) Update(dt float64) {
	buffs, mods, ok := s.components()
	if !ok {
		return
	}

	buffs.Homing = tick(buffs.Homing, dt)
	buffs.Tornado = tick(buffs.Tornado, dt)
	buffs.Stun = tick(buffs.Stun, dt)
	buffs.Frost = tick(buffs.Frost, dt)
	buffs.Flame = tick(buffs.Flame, dt)
	buffs.Oil = tick(buffs.Oil, dt)
	if buffs.Size > 0 {
		buffs.Size = tick(buffs.Size, dt)
		if buffs.Size == 0 {
			buffs.SizeMode = components.SizeNormal
			mods.Reset()
		}
	}

	if buffs.Remaining > 0 {
		buffs.Remaining = tick(buffs.Remaining, dt)
		seconds := int(math.Ceil(buffs.Remaining))
		if seconds != s.lastSeconds {
			s.lastSeconds = seconds
			label := buffs.Label
			if buffs.Remaining == 0 {
				label = noBuffLabel
			}
			s.state.Emit(event.EventBuff, event.BuffPayload{Label: label, Seconds: seconds})
		}
	}
}

// tick 计时减少 dt，不低于 0
func tick(t, dt float64) float64 {
	if t <= 0 {
		return 0
	}
	return math.Max(0, t-dt)
}

// Apply 拾取道具
//
// 冰冻、燃烧、油污、龙卷风、追踪设置对应计时；
// 体型增益已处于放大或缩小档位时保持原档位，否则随机选择一个档位；
// 放屁道具眩晕玩家并放倒模型，持续时间结束后由延迟回调扶正
func (s *BuffSystem) Apply(def config.PowerupDef) {
	buffs, mods, ok := s.components()
	if !ok {
		return
	}
	s.SetActive(def.Label, def.Duration)

	switch def.ID {
	case config.PowerupFrost:
		buffs.Frost = def.Duration
	case config.PowerupFlame:
		buffs.Flame = def.Duration
	case config.PowerupTornado:
		buffs.Tornado = def.Duration
	case config.PowerupOil:
		buffs.Oil = def.Duration
	case config.PowerupMissiles:
		buffs.Homing = def.Duration
	case config.PowerupSize:
		if buffs.SizeMode == components.SizeNormal {
			if s.state.Rand.Float64() > 0.5 {
				buffs.SizeMode = components.SizeGrow
			} else {
				buffs.SizeMode = components.SizeShrink
			}
		}
		profile := s.state.Data.Powerups.SizeProfiles[buffs.SizeMode.String()]
		mods.Damage = profile.Damage
		mods.Defense = profile.Defense
		mods.Speed = profile.Speed
		mods.Scale = profile.Scale
		buffs.Size = def.Duration
	case config.PowerupFart:
		buffs.Stun = def.Duration
		s.topple(def.Duration)
	}
	s.state.Cue(event.CuePickup)
}

// SetActive 设置 HUD 上的增益标签
// duration 为 0 时标签在 2 秒后重置
func (s *BuffSystem) SetActive(label string, duration float64) {
	buffs, _, ok := s.components()
	if !ok {
		return
	}
	buffs.Label = label
	buffs.Remaining = duration
	s.lastSeconds = int(math.Ceil(duration))
	s.state.Emit(event.EventBuff, event.BuffPayload{
		Label:   label,
		Seconds: s.lastSeconds,
		Note:    fmt.Sprintf("Picked up %s", label),
	})

	delay := duration
	if delay <= 0 {
		delay = 2
	}
	s.state.Scheduler.Schedule(buffHUDCategory, delay, func() {
		b, _, ok := s.components()
		if !ok || b.Label != label {
			return
		}
		b.Label = ""
		b.Remaining = 0
		s.state.Emit(event.EventBuff, event.BuffPayload{
			Label: noBuffLabel,
			Note:  fmt.Sprintf("%s expired", label),
		})
	})
}

// ClearAll 清空全部增益，恢复倍率和缩放
// 玩家死亡和每次开波时调用；玩家存活时被放倒的模型同时扶正
func (s *BuffSystem) ClearAll() {
	buffs, mods, ok := s.components()
	if !ok {
		return
	}
	buffs.Clear()
	mods.Reset()
	s.lastSeconds = 0
	s.state.Scheduler.Cancel(buffHUDCategory)
	s.state.Scheduler.Cancel(fartPoseCategory)
	s.state.Emit(event.EventBuff, event.BuffPayload{Label: noBuffLabel})

	if s.state.PlayerDead {
		return
	}
	if pose, ok := ecs.GetComponent[*components.PoseComponent](s.state.EntityManager, s.state.PlayerID); ok && pose.Pose == components.PoseToppled {
		pose.Pose = components.PoseUpright
		s.state.Emit(event.EventPose, event.PosePayload{Entity: s.state.PlayerID, Toppled: false})
	}
}

func (s *BuffSystem) topple(duration float64) {
	em := s.state.EntityManager
	id := s.state.PlayerID
	pose, ok := ecs.GetComponent[*components.PoseComponent](em, id)
	if !ok {
		return
	}
	pose.Pose = components.PoseToppled
	s.state.Emit(event.EventPose, event.PosePayload{Entity: id, Toppled: true})

	s.state.Scheduler.Schedule(fartPoseCategory, duration, func() {
		if s.state.PlayerDead {
			return
		}
		if p, ok := ecs.GetComponent[*components.PoseComponent](em, id); ok {
			p.Pose = components.PoseUpright
			s.state.Emit(event.EventPose, event.PosePayload{Entity: id, Toppled: false})
		}
	})
}
