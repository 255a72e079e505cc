package signing

const (
	// ExchangeDomainName CTF Exchange 的 EIP712 域名
	ExchangeDomainName = "Polymarket CTF Exchange"

	// ExchangeDomainVersion EIP712 版本
	ExchangeDomainVersion = "1"

	// ZeroAddress 公开订单的 taker
	ZeroAddress = "0x0000000000000000000000000000000000000000"
)
