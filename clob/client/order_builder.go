package client

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/betbot/gobet-signer/clob/signing"
	"github.com/betbot/gobet-signer/clob/types"
)

// BuilderOptions 订单构建器选项
type BuilderOptions struct {
	SignatureType types.SignatureType
	FunderAddress string // 为空时 maker 使用签名地址
	TickSize      types.TickSize
	NegRisk       bool
	SaltFunc      func() int64 // 为空时使用当前纳秒时间戳
}

// OrderBuilder 订单构建器
type OrderBuilder struct {
	privateKey *ecdsa.PrivateKey
	chainID    types.Chain
	contracts  *ContractConfig
	opts       BuilderOptions
}

// NewOrderBuilder 创建新的订单构建器
func NewOrderBuilder(privateKey *ecdsa.PrivateKey, chainID types.Chain, opts BuilderOptions) (*OrderBuilder, error) {
	if privateKey == nil {
		return nil, fmt.Errorf("私钥未配置")
	}
	contracts, err := GetContractConfig(chainID)
	if err != nil {
		return nil, fmt.Errorf("获取合约配置失败: %w", err)
	}
	if opts.TickSize == "" {
		opts.TickSize = types.TickSize001
	}
	if _, ok := RoundingConfig[opts.TickSize]; !ok {
		return nil, fmt.Errorf("不支持的 tick size: %s", opts.TickSize)
	}
	if !opts.SignatureType.Valid() {
		return nil, fmt.Errorf("不支持的签名类型: %d", opts.SignatureType)
	}
	if opts.SaltFunc == nil {
		opts.SaltFunc = func() int64 { return time.Now().UnixNano() }
	}
	return &OrderBuilder{
		privateKey: privateKey,
		chainID:    chainID,
		contracts:  contracts,
		opts:       opts,
	}, nil
}

// Address 签名地址
func (ob *OrderBuilder) Address() string {
	return signing.GetAddressFromPrivateKey(ob.privateKey).Hex()
}

// ChainID 链 ID
func (ob *OrderBuilder) ChainID() types.Chain {
	return ob.chainID
}

// ExchangeAddress 当前使用的交易所合约地址
func (ob *OrderBuilder) ExchangeAddress() string {
	if ob.opts.NegRisk {
		return ob.contracts.NegRiskExchange
	}
	return ob.contracts.Exchange
}

// BuildOrder 构建并签名订单
func (ob *OrderBuilder) BuildOrder(ctx context.Context, userOrder *types.UserOrder) (*types.SignedOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !userOrder.Side.Valid() {
		return nil, fmt.Errorf("无效的订单方向: %s", userOrder.Side)
	}

	tokenID, ok := new(big.Int).SetString(strings.TrimSpace(userOrder.TokenID), 10)
	if !ok || tokenID.Sign() < 0 {
		return nil, fmt.Errorf("无效的 tokenID: %s", userOrder.TokenID)
	}

	makerAmount, takerAmount, err := OrderAmounts(userOrder.Side, userOrder.Size, userOrder.Price, ob.opts.TickSize)
	if err != nil {
		return nil, fmt.Errorf("计算金额失败: %w", err)
	}

	feeRateBps, err := parseUint("feeRateBps", userOrder.FeeRateBps)
	if err != nil {
		return nil, err
	}

	nonce := big.NewInt(0)
	if userOrder.Nonce != nil {
		if nonce, err = parseUint("nonce", *userOrder.Nonce); err != nil {
			return nil, err
		}
	}

	expiration := big.NewInt(0)
	if userOrder.Expiration != nil {
		if *userOrder.Expiration < 0 {
			return nil, fmt.Errorf("无效的 expiration: %d", *userOrder.Expiration)
		}
		expiration = big.NewInt(*userOrder.Expiration)
	}

	signerAddress := ob.Address()
	maker := signerAddress
	if ob.opts.FunderAddress != "" {
		maker = ob.opts.FunderAddress
	}

	orderData := &signing.OrderData{
		Salt:          ob.opts.SaltFunc(),
		Maker:         maker,
		Signer:        signerAddress,
		Taker:         signing.ZeroAddress,
		TokenID:       tokenID,
		MakerAmount:   makerAmount,
		TakerAmount:   takerAmount,
		Expiration:    expiration,
		Nonce:         nonce,
		FeeRateBps:    feeRateBps,
		Side:          userOrder.Side,
		SignatureType: ob.opts.SignatureType,
	}

	signature, err := signing.BuildOrderSignature(ob.privateKey, ob.chainID, ob.ExchangeAddress(), orderData)
	if err != nil {
		return nil, fmt.Errorf("签名订单失败: %w", err)
	}

	return &types.SignedOrder{
		Salt:          orderData.Salt,
		Maker:         maker,
		Signer:        signerAddress,
		Taker:         signing.ZeroAddress,
		TokenID:       tokenID.String(),
		MakerAmount:   makerAmount.String(),
		TakerAmount:   takerAmount.String(),
		Expiration:    expiration.String(),
		Nonce:         nonce.String(),
		FeeRateBps:    feeRateBps.String(),
		Side:          userOrder.Side,
		SignatureType: int(ob.opts.SignatureType),
		Signature:     signature,
	}, nil
}

// parseUint 解析非负十进制整数
func parseUint(field, s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("无效的 %s: %q", field, s)
	}
	return v, nil
}
