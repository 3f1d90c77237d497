//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 在应用私有目录下创建设置存储目录
// gdata 在 Android 上写入 /data/data/{package}/ 但不会创建子目录，需在打开存储前调用
//
// 返回：
//   - string: 创建的目录
//   - error: 包名无法识别或目录不可写
func EnsureStorageDir(appName string) (string, error) {
	pkg, err := androidPackage()
	if err != nil {
		return "", fmt.Errorf("failed to detect Android package: %w", err)
	}

	dir := filepath.Join("/data/data", pkg, appName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}

	marker := filepath.Join(dir, ".writable")
	if err := os.WriteFile(marker, nil, 0644); err != nil {
		return "", fmt.Errorf("storage directory %s is not writable: %w", dir, err)
	}
	_ = os.Remove(marker)
	return dir, nil
}

// androidPackage 从 /proc/self/cmdline 读取进程名，即应用包名
func androidPackage() (string, error) {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	name := string(bytes.TrimSpace(data))
	if name == "" {
		return "", fmt.Errorf("empty process name")
	}
	return name, nil
}
