package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ShellSettings 外壳程序的偏好设置
// 只保存窗口、音频和开关类偏好，模拟状态从不持久化
type ShellSettings struct {
	SoundVolume  float64 `yaml:"soundVolume"`  // 音效音量 0.0 ~ 1.0
	SoundEnabled bool    `yaml:"soundEnabled"` // 音效开关

	RogueEnabled bool `yaml:"rogueEnabled"` // 是否允许流氓机器人出现
	DebugHUD     bool `yaml:"debugHud"`     // 是否显示调试计数

	Fullscreen bool `yaml:"fullscreen"` // 启动时是否全屏
}

// DefaultSettings 返回默认设置
func DefaultSettings() *ShellSettings {
	return &ShellSettings{
		SoundVolume:  0.8,
		SoundEnabled: true,
		RogueEnabled: false,
		DebugHUD:     false,
		Fullscreen:   false,
	}
}

// SettingsManager 设置管理器
// gdataManager 为 nil 时只在内存中保存设置
type SettingsManager struct {
	gdataManager *gdata.Manager
	settings     *ShellSettings
}

const (
	settingsObject   = "settings"
	settingsProperty = "shell"
)

// NewSettingsManager 创建设置管理器并尝试加载已保存的设置
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil
//
// 返回：
//   - *SettingsManager: 设置管理器实例，加载失败时使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: %v (using defaults)", err)
	}
	return sm
}

// OpenStorage 打开 gdata 存储，失败时返回 nil 并记录警告
func OpenStorage(appName string) *gdata.Manager {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[SettingsManager] Warning: storage unavailable: %v", err)
		return nil
	}
	return m
}

// Load 从 gdata 加载设置，没有存储或文件不存在时使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.SoundVolume = clampVolume(loaded.SoundVolume)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded")
	return nil
}

// Save 保存设置，没有存储时什么都不做
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved")
	return nil
}

// Settings 返回当前设置
func (sm *SettingsManager) Settings() *ShellSettings {
	return sm.settings
}

// SetSoundVolume 设置音效音量，限制在 0.0 ~ 1.0
// 仅修改内存中的设置，需调用 Save() 持久化
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampVolume(volume)
}

// SetSoundEnabled 设置音效开关
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}

// SetRogueEnabled 设置流氓机器人开关
func (sm *SettingsManager) SetRogueEnabled(enabled bool) {
	sm.settings.RogueEnabled = enabled
}

// SetDebugHUD 设置调试计数显示
func (sm *SettingsManager) SetDebugHUD(enabled bool) {
	sm.settings.DebugHUD = enabled
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
