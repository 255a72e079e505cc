package order

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/betbot/gobet-signer/clob/types"
)

// DecodeBody 解析请求体；数字保留原始文本（json.Number）
// 非法 JSON 或非对象时返回空对象，由 Normalize 报告缺失字段
func DecodeBody(data []byte) map[string]any {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return map[string]any{}
	}
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// Normalize 规范化下单请求
// 所有规则独立执行并收集全部错误；即使有错误也返回尽力构造的 Request
func Normalize(raw map[string]any) ([]string, Request) {
	var errs []string
	var out Request

	tokenID, ok := raw["tokenID"]
	if !ok || isFalsy(tokenID) {
		errs = append(errs, ErrTokenIDRequired)
	} else {
		out.TokenID = toString(tokenID)
	}

	// price/size 只检查 key 是否存在，数值 0 也是合法输入
	if price, ok := raw["price"]; ok {
		out.Price = toString(price)
	} else {
		errs = append(errs, ErrPriceRequired)
	}
	if size, ok := raw["size"]; ok {
		out.Size = toString(size)
	} else {
		errs = append(errs, ErrSizeRequired)
	}

	out.Side = types.SideBuy
	if side, ok := raw["side"]; ok && !isFalsy(side) {
		out.Side = types.Side(strings.ToUpper(toString(side)))
	}
	if !out.Side.Valid() {
		errs = append(errs, ErrInvalidSide)
	}

	out.FeeRateBps = DefaultFeeRateBps
	if fee, ok := raw["feeRateBps"]; ok {
		out.FeeRateBps = toString(fee)
	}

	if exp, ok := raw["expiration"]; ok {
		if secs, ok := toUnixSeconds(exp); ok {
			out.Expiration = &secs
		} else {
			errs = append(errs, ErrExpiration)
		}
	}

	if nonce, ok := raw["nonce"]; ok {
		s := toString(nonce)
		out.Nonce = &s
	}

	return errs, out
}

// toUnixSeconds 数值化后截断为整数秒；非有限值或超出 int64 范围返回 false
func toUnixSeconds(v any) (int64, bool) {
	f := toNumber(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	f = math.Trunc(f)
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}
