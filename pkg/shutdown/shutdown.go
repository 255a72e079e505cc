package shutdown

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Handler 关闭处理函数
type Handler func(ctx context.Context) error

type namedHandler struct {
	name string
	fn   Handler
}

// Manager 优雅关闭管理器
// 回调按注册的逆序依次执行（先注册的最后关闭）
type Manager struct {
	mu        sync.Mutex
	callbacks []namedHandler
	log       *logrus.Entry
}

// NewManager 创建新的关闭管理器
func NewManager(log *logrus.Entry) *Manager {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Manager{log: log}
}

// OnShutdown 注册关闭回调
func (m *Manager) OnShutdown(name string, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, namedHandler{name: name, fn: handler})
}

// Shutdown 执行所有关闭回调（阻塞调用），返回失败的回调数
// ctx 应该是一个带超时的 context；超时后剩余回调仍会执行，由回调自行处理 ctx
func (m *Manager) Shutdown(ctx context.Context) int {
	m.mu.Lock()
	callbacks := m.callbacks
	m.callbacks = nil
	m.mu.Unlock()

	if len(callbacks) == 0 {
		m.log.Info("没有注册的关闭回调")
		return 0
	}

	m.log.Infof("开始优雅关闭，共 %d 个回调", len(callbacks))
	failed := 0
	for i := len(callbacks) - 1; i >= 0; i-- {
		cb := callbacks[i]
		if err := cb.fn(ctx); err != nil {
			failed++
			m.log.WithField("handler", cb.name).Warnf("关闭回调失败: %v", err)
		}
	}
	if ctx.Err() != nil {
		m.log.Warnf("关闭超时: %v", ctx.Err())
	}
	return failed
}
