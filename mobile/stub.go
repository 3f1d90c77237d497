//go:build !mobile

// Package mobile 是 gomobile bind 的入口
//
// 真正的初始化在 mobile.go 中，只在 -tags mobile 下编译；
// 普通构建只保留这个空包，保证 go build ./... 能通过。
package mobile

// Dummy 占位导出
func Dummy() {}
