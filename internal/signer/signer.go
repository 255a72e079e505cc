// Package signer 把 CLOB 订单构建器适配为网关的签名能力。
package signer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/betbot/gobet-signer/clob/client"
	"github.com/betbot/gobet-signer/internal/gateway"
	"github.com/betbot/gobet-signer/internal/order"
)

// ClobSigner 使用 Polymarket CTF Exchange EIP712 签名
type ClobSigner struct {
	builder *client.OrderBuilder
}

var _ gateway.Signer = (*ClobSigner)(nil)

// New 创建签名器
func New(builder *client.OrderBuilder) *ClobSigner {
	return &ClobSigner{builder: builder}
}

// Sign 签名规范化订单并序列化为 JSON
func (s *ClobSigner) Sign(ctx context.Context, req order.Request) (gateway.SignedOrder, error) {
	signed, err := s.builder.BuildOrder(ctx, req.UserOrder())
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(signed)
	if err != nil {
		return nil, fmt.Errorf("序列化签名订单失败: %w", err)
	}
	return data, nil
}
