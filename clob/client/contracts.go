package client

import (
	"fmt"

	"github.com/betbot/gobet-signer/clob/types"
)

// ContractConfig 合约配置
type ContractConfig struct {
	Exchange        string // 标准交易所合约地址
	NegRiskExchange string // 负风险交易所合约地址
}

const (
	// CollateralTokenDecimals 抵押品代币精度（USDC = 6）
	CollateralTokenDecimals = 6
)

// PolygonMainnetContracts Polygon 主网合约地址
var PolygonMainnetContracts = ContractConfig{
	Exchange:        "0x4bFb41d5B3570DeFd03C39a9A4D8dE6Bd8B8982E",
	NegRiskExchange: "0xC5d563A36AE78145C45a50134d48A1215220f80a",
}

// AmoyTestnetContracts Amoy 测试网合约地址
var AmoyTestnetContracts = ContractConfig{
	Exchange:        "0xdFE02Eb6733538f8Ea35D585af8DE5958AD99E40",
	NegRiskExchange: "0xC5d563A36AE78145C45a50134d48A1215220f80a",
}

// GetContractConfig 根据链 ID 获取合约配置
func GetContractConfig(chainID types.Chain) (*ContractConfig, error) {
	switch chainID {
	case types.ChainPolygon:
		return &PolygonMainnetContracts, nil
	case types.ChainAmoy:
		return &AmoyTestnetContracts, nil
	default:
		return nil, fmt.Errorf("不支持的链 ID: %d", chainID)
	}
}
