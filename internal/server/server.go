package server

import (
	"net/http"

	"github.com/betbot/gobet-signer/clob/types"
	"github.com/betbot/gobet-signer/internal/gateway"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Info /health 返回的签名网络信息
type Info struct {
	Host    string
	ChainID types.Chain
	Address string // 签名地址（公钥推导，可公开）
}

// Server HTTP 入口
type Server struct {
	svc  *gateway.Service
	auth *gateway.AuthGate
	info Info
	log  *logrus.Entry
}

// New 创建 HTTP 服务
func New(svc *gateway.Service, auth *gateway.AuthGate, info Info, log *logrus.Entry) *Server {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Server{svc: svc, auth: auth, info: info, log: log}
}

// Router 构建路由
func (s *Server) Router() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(requestID(), s.accessLog(), gin.CustomRecovery(s.recover))

	r.GET("/health", s.handleHealth)

	protected := r.Group("/", s.requireAuth)
	protected.POST("/sign", s.handleSign)
	protected.POST("/place", s.handlePlace)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Not found"})
	})
	return r
}

func (s *Server) recover(c *gin.Context, err any) {
	s.log.WithField("request_id", c.GetString(requestIDKey)).Errorf("请求处理 panic: %v", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Internal error"})
}
