// Package types 定义共享的基础类型
package types

import "fmt"

// EnemySize 定义敌人的体型等级，决定基础属性
type EnemySize int

const (
	// EnemySmall 小型机器人
	EnemySmall EnemySize = iota
	// EnemyMedium 中型机器人
	EnemyMedium
	// EnemyLarge 大型机器人
	EnemyLarge
	// EnemyBoss 每波一次的首领
	EnemyBoss
)

// String 返回配置文件中使用的名称
func (s EnemySize) String() string {
	switch s {
	case EnemySmall:
		return "small"
	case EnemyMedium:
		return "medium"
	case EnemyLarge:
		return "large"
	case EnemyBoss:
		return "boss"
	default:
		return fmt.Sprintf("EnemySize(%d)", int(s))
	}
}

// ParseEnemySize 将配置名称解析为 EnemySize
func ParseEnemySize(name string) (EnemySize, error) {
	switch name {
	case "small":
		return EnemySmall, nil
	case "medium":
		return EnemyMedium, nil
	case "large":
		return EnemyLarge, nil
	case "boss":
		return EnemyBoss, nil
	}
	return EnemySmall, fmt.Errorf("unknown enemy size %q", name)
}
