// Package embedded 提供嵌入数据文件的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让 config 等包可以按路径读取数据。
//
// 路由规则：
//   - "data/" 前缀：从 Init() 传入的文件系统读取（通常是嵌入的 embed.FS）
//   - 其他路径：直接读取操作系统文件（测试夹具、-data 覆盖目录）
package embedded

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	dataFS      fs.FS
	initialized bool
)

// dataPrefix 嵌入数据的路径前缀
const dataPrefix = "data/"

// ErrNotInitialized 在未调用 Init() 就读取 "data/" 路径时返回
var ErrNotInitialized = fmt.Errorf("embedded package not initialized, call Init() first")

// Init 初始化数据文件系统
// 必须在 main() 开始时、任何配置加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 标准化路径分隔符并去掉 "./" 前缀
func normalize(path string) string {
	path = filepath.ToSlash(path)
	return strings.TrimPrefix(path, "./")
}

// isDataPath 判断路径是否指向嵌入数据
func isDataPath(path string) bool {
	return strings.HasPrefix(path, dataPrefix)
}

// ReadFile 读取文件内容
// "data/" 前缀从嵌入文件系统读取，其他路径从磁盘读取
func ReadFile(path string) ([]byte, error) {
	path = normalize(path)
	if !isDataPath(path) {
		return os.ReadFile(filepath.FromSlash(path))
	}
	if !initialized {
		return nil, ErrNotInitialized
	}
	return fs.ReadFile(dataFS, path)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	path = normalize(path)
	if !isDataPath(path) {
		_, err := os.Stat(filepath.FromSlash(path))
		return err == nil
	}
	if !initialized {
		return false
	}
	_, err := fs.Stat(dataFS, path)
	return err == nil
}

// Glob 匹配嵌入数据中的文件
// 模式必须以 "data/" 开头
func Glob(pattern string) ([]string, error) {
	pattern = normalize(pattern)
	if !isDataPath(pattern) {
		return nil, fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", pattern)
	}
	if !initialized {
		return nil, ErrNotInitialized
	}
	return fs.Glob(dataFS, pattern)
}
