//go:build mobile

package utils

// TouchControls 移动端始终启用触屏摇杆
func TouchControls() bool {
	return true
}
