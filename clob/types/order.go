package types

// UserOrder 待签名的用户订单
// 数值字段一律以字符串承载，避免精度丢失
type UserOrder struct {
	TokenID    string
	Price      string
	Size       string
	Side       Side
	FeeRateBps string
	Expiration *int64 // 可选，unix 秒
	Nonce      *string
}

// SignedOrder 已签名的订单
type SignedOrder struct {
	Salt          int64  `json:"salt"`
	Maker         string `json:"maker"`
	Signer        string `json:"signer"`
	Taker         string `json:"taker"`
	TokenID       string `json:"tokenId"`
	MakerAmount   string `json:"makerAmount"`
	TakerAmount   string `json:"takerAmount"`
	Expiration    string `json:"expiration"`
	Nonce         string `json:"nonce"`
	FeeRateBps    string `json:"feeRateBps"`
	Side          Side   `json:"side"`
	SignatureType int    `json:"signatureType"`
	Signature     string `json:"signature"`
}
