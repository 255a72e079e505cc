package client

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/betbot/gobet-signer/clob/types"
	"github.com/shopspring/decimal"
)

// RoundConfig 舍入配置
type RoundConfig struct {
	Price  int32 // 价格小数位数
	Size   int32 // 数量小数位数
	Amount int32 // 金额小数位数
}

// RoundingConfig 根据 tick size 返回舍入配置
var RoundingConfig = map[types.TickSize]RoundConfig{
	types.TickSize01:    {Price: 1, Size: 2, Amount: 3},
	types.TickSize001:   {Price: 2, Size: 2, Amount: 4},
	types.TickSize0001:  {Price: 3, Size: 2, Amount: 5},
	types.TickSize00001: {Price: 4, Size: 2, Amount: 6},
}

// decimalPlaces 返回小数位数（忽略末尾的 0）
func decimalPlaces(d decimal.Decimal) int32 {
	s := d.String()
	idx := strings.IndexByte(s, '.')
	if idx < 0 {
		return 0
	}
	return int32(len(s) - idx - 1)
}

// fitAmount 将乘积收敛到 amount 精度：先向上取到 amount+4 位，仍超出则向下截断
func fitAmount(amt decimal.Decimal, places int32) decimal.Decimal {
	if decimalPlaces(amt) <= places {
		return amt
	}
	amt = amt.RoundCeil(places + 4)
	if decimalPlaces(amt) > places {
		amt = amt.RoundFloor(places)
	}
	return amt
}

// getOrderRawAmounts 计算订单的 maker/taker 金额（未换算精度）
func getOrderRawAmounts(side types.Side, size, price decimal.Decimal, rc RoundConfig) (maker, taker decimal.Decimal) {
	rawPrice := price.Round(rc.Price)
	shares := size.RoundFloor(rc.Size)
	notional := fitAmount(shares.Mul(rawPrice), rc.Amount)

	if side == types.SideBuy {
		// 买入：maker 支付 USDC，taker 获得 tokens
		return notional, shares
	}
	// 卖出：maker 付出 tokens，taker 支付 USDC
	return shares, notional
}

// parseUnits 将金额换算为链上最小单位（向下取整）
func parseUnits(value decimal.Decimal, decimals int32) *big.Int {
	return value.Shift(decimals).Truncate(0).BigInt()
}

// OrderAmounts 根据价格/数量字符串计算链上 maker/taker 金额
func OrderAmounts(side types.Side, sizeStr, priceStr string, tickSize types.TickSize) (*big.Int, *big.Int, error) {
	rc, ok := RoundingConfig[tickSize]
	if !ok {
		return nil, nil, fmt.Errorf("不支持的 tick size: %s", tickSize)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(priceStr))
	if err != nil {
		return nil, nil, fmt.Errorf("无效的 price: %q", priceStr)
	}
	size, err := decimal.NewFromString(strings.TrimSpace(sizeStr))
	if err != nil {
		return nil, nil, fmt.Errorf("无效的 size: %q", sizeStr)
	}
	if !price.IsPositive() || price.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, nil, fmt.Errorf("price 必须在 (0, 1) 区间: %s", priceStr)
	}
	if !size.IsPositive() {
		return nil, nil, fmt.Errorf("size 必须大于 0: %s", sizeStr)
	}

	maker, taker := getOrderRawAmounts(side, size, price, rc)
	return parseUnits(maker, CollateralTokenDecimals), parseUnits(taker, CollateralTokenDecimals), nil
}
