// Package relay 把签名订单转发给下游执行端，并原样返回其响应。
package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/betbot/gobet-signer/internal/gateway"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// SubmitOrderPath 下游提交订单的逻辑路径
	SubmitOrderPath = "/order"

	// ClientHeader 客户端标识头
	ClientHeader = "X-Signer-Client"
	// ClientName 客户端标识
	ClientName = "gobet-signer"

	// DefaultContentType 下游未声明 Content-Type 时使用
	DefaultContentType = "text/plain"
)

// Envelope 发给下游的请求载荷
type Envelope struct {
	Method string          `json:"method"`
	Path   string          `json:"path"`
	Body   json.RawMessage `json:"body"`
}

// Client 下游转发客户端
type Client struct {
	client *resty.Client
	url    string
	token  string
}

var _ gateway.Relayer = (*Client)(nil)

// NewClient 创建转发客户端；不重试，超时为 0 时使用 30 秒
func NewClient(targetURL, token string, timeout time.Duration, log *logrus.Entry) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	rc := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0)
	if log != nil {
		rc.SetLogger(log)
	}
	return &Client{
		client: rc,
		url:    strings.TrimSpace(targetURL),
		token:  token,
	}
}

// Relay 提交签名订单，返回下游状态码、原始响应体和 Content-Type
// 不解析响应，也不根据状态码判断成败
func (c *Client) Relay(ctx context.Context, signed gateway.SignedOrder) (*gateway.RelayResponse, error) {
	payload, err := json.Marshal(Envelope{
		Method: http.MethodPost,
		Path:   SubmitOrderPath,
		Body:   json.RawMessage(signed),
	})
	if err != nil {
		return nil, errors.Wrap(err, "encode relay envelope")
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.token).
		SetHeader(ClientHeader, ClientName).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "*/*").
		SetBody(payload).
		Post(c.url)
	if err != nil {
		return nil, errors.Wrap(err, "relay request failed")
	}

	contentType := resp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = DefaultContentType
	}
	return &gateway.RelayResponse{
		Status:      resp.StatusCode(),
		Body:        string(resp.Body()),
		ContentType: contentType,
	}, nil
}
