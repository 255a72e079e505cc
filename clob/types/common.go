package types

import "fmt"

// Side 订单方向
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Valid 是否为合法的订单方向
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// Chain 区块链网络
type Chain int

const (
	ChainPolygon Chain = 137
	ChainAmoy    Chain = 80002
)

// ParseChain 解析并校验链 ID
func ParseChain(id int) (Chain, error) {
	switch Chain(id) {
	case ChainPolygon, ChainAmoy:
		return Chain(id), nil
	default:
		return 0, fmt.Errorf("不支持的链 ID: %d", id)
	}
}

// SignatureType 签名类型
type SignatureType int

const (
	SignatureTypeBrowser    SignatureType = 0 // EOA - Standard Ethereum wallet (MetaMask)
	SignatureTypeMagic      SignatureType = 1 // POLY_PROXY - Magic Link email/Google login
	SignatureTypeGnosisSafe SignatureType = 2 // GNOSIS_SAFE - Gnosis Safe multisig proxy wallet
)

// Valid 是否为已知的签名类型
func (t SignatureType) Valid() bool {
	return t >= SignatureTypeBrowser && t <= SignatureTypeGnosisSafe
}

// TickSize 价格精度
type TickSize string

const (
	TickSize01    TickSize = "0.1"
	TickSize001   TickSize = "0.01"
	TickSize0001  TickSize = "0.001"
	TickSize00001 TickSize = "0.0001"
)
