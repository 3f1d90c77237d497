// Package debugserver 通过 HTTP 暴露调试计数
//
// 服务器运行在独立 goroutine 中，只读取 HUD 在互斥锁保护下保存的计数副本，
// 不直接访问模拟状态。
package debugserver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gonewx/blockbattle/pkg/event"
	"github.com/gonewx/blockbattle/pkg/systems"
)

// CounterSource 调试计数来源，实现必须可并发调用
type CounterSource interface {
	DebugCounters() event.DebugCounters
}

// Server 调试 HTTP 服务
type Server struct {
	source CounterSource
	engine *gin.Engine
	http   *http.Server
}

// New 创建调试服务
//
// 路由：
//   - GET /health: 存活检查
//   - GET /debug/counters: JSON 计数
//   - GET /debug/text: 与调试 HUD 相同的文本
func New(addr string, source CounterSource) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{source: source}

	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	debug := r.Group("/debug")
	{
		debug.GET("/counters", s.handleCounters)
		debug.GET("/text", s.handleText)
	}

	s.engine = r
	s.http = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler 返回路由，测试中直接使用
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) handleCounters(c *gin.Context) {
	c.JSON(http.StatusOK, s.source.DebugCounters())
}

func (s *Server) handleText(c *gin.Context) {
	c.String(http.StatusOK, systems.DebugText(s.source.DebugCounters()))
}

// Start 在后台 goroutine 中监听
// 监听失败只记录日志，不影响游戏
func (s *Server) Start() {
	go func() {
		log.Printf("[DebugServer] Listening on %s", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[DebugServer] Warning: %v", err)
		}
	}()
}

// Shutdown 停止服务
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down debug server: %w", err)
	}
	return nil
}
