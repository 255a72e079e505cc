package signing

import (
	"crypto/ecdsa"
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// privateKeyPattern 32 字节十六进制私钥，可带 0x 前缀
var privateKeyPattern = regexp.MustCompile(`^(0x)?[0-9a-fA-F]{64}$`)

// ValidPrivateKeyHex 检查私钥格式
func ValidPrivateKeyHex(hexKey string) bool {
	return privateKeyPattern.MatchString(hexKey)
}

// PrivateKeyFromHex 从十六进制字符串解析私钥
func PrivateKeyFromHex(hexKey string) (*ecdsa.PrivateKey, error) {
	if !ValidPrivateKeyHex(hexKey) {
		return nil, fmt.Errorf("私钥格式错误: 需要 64 位十六进制字符")
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		// 不回显私钥内容
		return nil, fmt.Errorf("解析私钥失败")
	}
	return key, nil
}

// GetAddressFromPrivateKey 从私钥获取地址
func GetAddressFromPrivateKey(privateKey *ecdsa.PrivateKey) common.Address {
	return crypto.PubkeyToAddress(privateKey.PublicKey)
}
