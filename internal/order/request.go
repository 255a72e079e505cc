// Package order 负责把不可信的下单请求体规范化为 Request。
package order

import "github.com/betbot/gobet-signer/clob/types"

// 校验错误文案（对外稳定）
const (
	ErrTokenIDRequired = "tokenID is required"
	ErrPriceRequired   = "price is required"
	ErrSizeRequired    = "size is required"
	ErrInvalidSide     = "side must be BUY or SELL"
	ErrExpiration      = "expiration must be unix seconds (number)"
)

// DefaultFeeRateBps 未提供 feeRateBps 时的默认值
const DefaultFeeRateBps = "0"

// Request 规范化后的下单请求
// 可选字段未提供时为 nil，序列化时不输出对应 key
type Request struct {
	TokenID    string     `json:"tokenID"`
	Price      string     `json:"price"`
	Size       string     `json:"size"`
	Side       types.Side `json:"side"`
	FeeRateBps string     `json:"feeRateBps"`
	Expiration *int64     `json:"expiration,omitempty"`
	Nonce      *string    `json:"nonce,omitempty"`
}

// UserOrder 转换为签名器使用的订单
func (r Request) UserOrder() *types.UserOrder {
	return &types.UserOrder{
		TokenID:    r.TokenID,
		Price:      r.Price,
		Size:       r.Size,
		Side:       r.Side,
		FeeRateBps: r.FeeRateBps,
		Expiration: r.Expiration,
		Nonce:      r.Nonce,
	}
}
