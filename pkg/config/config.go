package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/betbot/gobet-signer/clob/signing"
	"github.com/betbot/gobet-signer/clob/types"
	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"
)

// RelayConfig 下游转发配置，URL 与 Token 同时存在才算已配置
type RelayConfig struct {
	URL     string
	Token   string
	Timeout time.Duration
}

// Configured 下游是否已配置
func (r RelayConfig) Configured() bool {
	return r.URL != "" && r.Token != ""
}

// Config 应用配置（启动时加载一次，之后只读）
type Config struct {
	ListenAddr    string
	ClobHost      string
	ChainID       types.Chain
	PrivateKey    string // 十六进制私钥，禁止打印
	AuthToken     string // 网关共享密钥
	Relay         RelayConfig
	SignatureType types.SignatureType
	FunderAddress string
	NegRisk       bool
	TickSize      types.TickSize
	LogLevel      string
	LogFile       string
}

// String 脱敏输出
func (c *Config) String() string {
	return fmt.Sprintf("Config{listen=%s host=%s chainId=%d relay=%v signatureType=%d negRisk=%v tickSize=%s}",
		c.ListenAddr, c.ClobHost, c.ChainID, c.Relay.Configured(), c.SignatureType, c.NegRisk, c.TickSize)
}

// ConfigFile 配置文件结构（用于 YAML/JSON 解析）
type ConfigFile struct {
	ListenAddr          string `yaml:"listen_addr" json:"listen_addr"`
	ClobHost            string `yaml:"clob_host" json:"clob_host"`
	ChainID             int    `yaml:"chain_id" json:"chain_id"`
	PrivateKey          string `yaml:"private_key" json:"private_key"`
	AuthToken           string `yaml:"auth_token" json:"auth_token"`
	RelayURL            string `yaml:"relay_url" json:"relay_url"`
	RelayAuthToken      string `yaml:"relay_auth_token" json:"relay_auth_token"`
	RelayTimeoutSeconds int    `yaml:"relay_timeout_seconds" json:"relay_timeout_seconds"`
	SignatureType       *int   `yaml:"signature_type" json:"signature_type"`
	FunderAddress       string `yaml:"funder_address" json:"funder_address"`
	NegRisk             bool   `yaml:"neg_risk" json:"neg_risk"`
	TickSize            string `yaml:"tick_size" json:"tick_size"`
	LogLevel            string `yaml:"log_level" json:"log_level"`
	LogFile             string `yaml:"log_file" json:"log_file"`
}

// Load 加载配置（优先级：环境变量 > 配置文件 > 默认值）
// filePath 为空时只读环境变量
func Load(filePath string) (*Config, error) {
	cf := &ConfigFile{}
	if filePath != "" {
		var err error
		cf, err = loadConfigFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("加载配置文件失败 %s: %w", filePath, err)
		}
	}
	return FromSources(cf, os.Getenv)
}

// FromSources 由配置文件内容与环境变量读取函数构建配置
func FromSources(cf *ConfigFile, getenv func(string) string) (*Config, error) {
	if cf == nil {
		cf = &ConfigFile{}
	}
	env := func(key, fileValue, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		if fileValue != "" {
			return fileValue
		}
		return def
	}

	chainID, err := parseInt("CHAIN_ID", env("CHAIN_ID", intString(cf.ChainID), ""))
	if err != nil {
		return nil, err
	}
	sigType := 0
	if cf.SignatureType != nil {
		sigType = *cf.SignatureType
	}
	if sigType, err = parseInt("SIGNATURE_TYPE", env("SIGNATURE_TYPE", strconv.Itoa(sigType), "0")); err != nil {
		return nil, err
	}
	timeoutSecs, err := parseInt("RELAY_TIMEOUT_SECONDS", env("RELAY_TIMEOUT_SECONDS", intString(cf.RelayTimeoutSeconds), "30"))
	if err != nil {
		return nil, err
	}
	negRisk, err := strconv.ParseBool(env("NEG_RISK", strconv.FormatBool(cf.NegRisk), "false"))
	if err != nil {
		return nil, fmt.Errorf("NEG_RISK 格式错误: %w", err)
	}

	c := &Config{
		ListenAddr: env("LISTEN_ADDR", cf.ListenAddr, ":8080"),
		ClobHost:   env("CLOB_HOST", cf.ClobHost, ""),
		ChainID:    types.Chain(chainID),
		PrivateKey: env("PRIVATE_KEY", cf.PrivateKey, ""),
		AuthToken:  env("SIGNER_AUTH_TOKEN", cf.AuthToken, ""),
		Relay: RelayConfig{
			URL:     env("RELAY_URL", cf.RelayURL, ""),
			Token:   env("RELAY_AUTH_TOKEN", cf.RelayAuthToken, ""),
			Timeout: time.Duration(timeoutSecs) * time.Second,
		},
		SignatureType: types.SignatureType(sigType),
		FunderAddress: env("FUNDER_ADDRESS", cf.FunderAddress, ""),
		NegRisk:       negRisk,
		TickSize:      types.TickSize(env("TICK_SIZE", cf.TickSize, string(types.TickSize001))),
		LogLevel:      env("LOG_LEVEL", cf.LogLevel, "info"),
		LogFile:       env("LOG_FILE", cf.LogFile, ""),
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("配置验证失败: %w", err)
	}
	return c, nil
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.ClobHost == "" {
		return fmt.Errorf("CLOB_HOST 未配置")
	}
	if c.ChainID == 0 {
		return fmt.Errorf("CHAIN_ID 未配置")
	}
	if _, err := types.ParseChain(int(c.ChainID)); err != nil {
		return err
	}
	if c.PrivateKey == "" {
		return fmt.Errorf("PRIVATE_KEY 未配置")
	}
	if !signing.ValidPrivateKeyHex(c.PrivateKey) {
		return fmt.Errorf("PRIVATE_KEY 格式错误: 需要 64 位十六进制字符（可带 0x 前缀）")
	}
	if c.AuthToken == "" {
		return fmt.Errorf("SIGNER_AUTH_TOKEN 未配置")
	}
	if !c.SignatureType.Valid() {
		return fmt.Errorf("SIGNATURE_TYPE 必须是 0、1 或 2")
	}
	if c.FunderAddress != "" && !common.IsHexAddress(c.FunderAddress) {
		return fmt.Errorf("FUNDER_ADDRESS 不是合法地址: %s", c.FunderAddress)
	}
	if c.SignatureType != types.SignatureTypeBrowser && c.FunderAddress == "" {
		return fmt.Errorf("SIGNATURE_TYPE=%d 时必须配置 FUNDER_ADDRESS", c.SignatureType)
	}
	switch c.TickSize {
	case types.TickSize01, types.TickSize001, types.TickSize0001, types.TickSize00001:
	default:
		return fmt.Errorf("不支持的 TICK_SIZE: %s", c.TickSize)
	}
	if c.Relay.Timeout < 0 {
		return fmt.Errorf("RELAY_TIMEOUT_SECONDS 不能为负数")
	}
	return nil
}

// loadConfigFile 加载配置文件（支持 YAML 和 JSON）
func loadConfigFile(filePath string) (*ConfigFile, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var configFile ConfigFile
	ext := strings.ToLower(filepath.Ext(filePath))

	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &configFile); err != nil {
			return nil, fmt.Errorf("解析 YAML 配置文件失败: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &configFile); err != nil {
			return nil, fmt.Errorf("解析 JSON 配置文件失败: %w", err)
		}
	default:
		return nil, fmt.Errorf("不支持的配置文件格式: %s (支持 .yaml, .yml, .json)", ext)
	}

	return &configFile, nil
}

func parseInt(key, value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s 必须是整数: %q", key, value)
	}
	return n, nil
}

func intString(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
