//go:build !mobile

package utils

import "os"

// TouchEnvVar 桌面端用来模拟触屏操作的环境变量
const TouchEnvVar = "BLOCKBATTLE_TOUCH"

// TouchControls 是否启用触屏摇杆
// 桌面端默认关闭，设置 BLOCKBATTLE_TOUCH=1 可在本地调试触屏操作
func TouchControls() bool {
	return os.Getenv(TouchEnvVar) == "1"
}
