package server

import (
	"errors"
	"net/http"

	"github.com/betbot/gobet-signer/internal/gateway"
	"github.com/betbot/gobet-signer/internal/order"
	"github.com/gin-gonic/gin"
)

// 对外错误文案
const (
	errInvalidInput  = "Invalid input"
	errSignFailed    = "Sign failed"
	errPlaceFailed   = "Place failed"
	errNotConfigured = "Relay target not configured on signer"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"host":    s.info.Host,
		"chainId": int(s.info.ChainID),
		"address": s.info.Address,
	})
}

func (s *Server) handleSign(c *gin.Context) {
	signed, err := s.svc.SignOnly(c.Request.Context(), readBody(c))
	if err != nil {
		s.writeFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "signedOrder": signed})
}

func (s *Server) handlePlace(c *gin.Context) {
	resp, err := s.svc.SignAndRelay(c.Request.Context(), readBody(c))
	if err != nil {
		s.writeFailure(c, err)
		return
	}
	// 下游响应原样透传
	c.Data(resp.Status, resp.ContentType, []byte(resp.Body))
}

// readBody 读取请求体；读取失败按空对象处理
func readBody(c *gin.Context) map[string]any {
	data, err := c.GetRawData()
	if err != nil {
		return map[string]any{}
	}
	return order.DecodeBody(data)
}

// writeFailure 把网关失败结果映射为 HTTP 响应
func (s *Server) writeFailure(c *gin.Context, err error) {
	var gerr *gateway.Error
	if !errors.As(err, &gerr) {
		s.log.WithField("request_id", c.GetString(requestIDKey)).Errorf("未分类错误: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Internal error", "details": err.Error()})
		return
	}

	switch gerr.Kind {
	case gateway.KindInvalidInput:
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": errInvalidInput, "errors": gerr.Errors})
	case gateway.KindMisconfigured:
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": errNotConfigured, "signedOrder": gerr.SignedOrder})
	case gateway.KindSignFailed:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": errSignFailed, "details": gerr.Details()})
	case gateway.KindPlaceFailed:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": errPlaceFailed, "details": gerr.Details()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Internal error", "details": gerr.Error()})
	}
}
