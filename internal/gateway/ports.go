package gateway

import (
	"context"
	"encoding/json"

	"github.com/betbot/gobet-signer/internal/order"
)

// SignedOrder 签名后的订单
// 核心流程不解析其内容，只原样返回或转发
type SignedOrder = json.RawMessage

// Signer 能对规范化订单签名的能力
type Signer interface {
	Sign(ctx context.Context, req order.Request) (SignedOrder, error)
}

// RelayResponse 下游原始响应
type RelayResponse struct {
	Status      int
	Body        string
	ContentType string
}

// Relayer 能把签名订单提交给下游的能力
type Relayer interface {
	Relay(ctx context.Context, signed SignedOrder) (*RelayResponse, error)
}
