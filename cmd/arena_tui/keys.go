package main

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/blockbattle/pkg/input"
)

// holdDuration 终端没有松键事件，按键在这段时间内视为按住
const holdDuration = 0.18

// termKeys 把 tcell 按键事件转换成 input.KeyState
// 每次按键刷新按住计时，Advance 在每帧末尾推进计时并清除边沿标志
type termKeys struct {
	byName map[string][]input.Action
	held   map[input.Action]float64
	just   map[input.Action]bool
}

func newTermKeys(bindings input.Bindings) *termKeys {
	k := &termKeys{
		byName: make(map[string][]input.Action),
		held:   make(map[input.Action]float64),
		just:   make(map[input.Action]bool),
	}
	for action, names := range bindings {
		for _, name := range names {
			k.byName[name] = append(k.byName[name], action)
		}
	}
	return k
}

// keyName 返回与 ebiten 按键名称一致的写法，无法识别时返回空串
func keyName(key tcell.Key, r rune) string {
	switch key {
	case tcell.KeyUp:
		return "ArrowUp"
	case tcell.KeyDown:
		return "ArrowDown"
	case tcell.KeyLeft:
		return "ArrowLeft"
	case tcell.KeyRight:
		return "ArrowRight"
	case tcell.KeyEnter:
		return "Enter"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "Backspace"
	case tcell.KeyEscape:
		return "Escape"
	case tcell.KeyF8:
		return "F8"
	case tcell.KeyF11:
		return "F11"
	case tcell.KeyRune:
		if r == ' ' {
			return "Space"
		}
		return strings.ToUpper(string(r))
	}
	return ""
}

// Press 记录一次按键，返回是否命中了绑定
func (k *termKeys) Press(name string) bool {
	actions, ok := k.byName[name]
	if !ok {
		return false
	}
	for _, a := range actions {
		if k.held[a] <= 0 {
			k.just[a] = true
		}
		k.held[a] = holdDuration
	}
	return true
}

// Advance 推进按住计时并清除本帧的边沿标志
func (k *termKeys) Advance(dt float64) {
	for a, t := range k.held {
		if t -= dt; t <= 0 {
			delete(k.held, a)
		} else {
			k.held[a] = t
		}
	}
	clear(k.just)
}

// Pressed 实现 input.KeyState
func (k *termKeys) Pressed(a input.Action) bool {
	return k.held[a] > 0
}

// JustPressed 实现 input.KeyState
func (k *termKeys) JustPressed(a input.Action) bool {
	return k.just[a]
}
