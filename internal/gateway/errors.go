package gateway

import "fmt"

// Kind 失败类别
type Kind int

const (
	KindInvalidInput Kind = iota + 1
	KindSignFailed
	KindMisconfigured
	KindPlaceFailed
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindSignFailed:
		return "sign_failed"
	case KindMisconfigured:
		return "misconfigured"
	case KindPlaceFailed:
		return "place_failed"
	default:
		return "unknown"
	}
}

// Error 路由操作的结构化失败结果
type Error struct {
	Kind        Kind
	Errors      []string    // KindInvalidInput
	SignedOrder SignedOrder // KindMisconfigured：附带已签名订单便于排查
	Err         error       // KindSignFailed / KindPlaceFailed 的原因
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidInput:
		return fmt.Sprintf("%s: %v", e.Kind, e.Errors)
	case KindMisconfigured:
		return e.Kind.String() + ": relay target not configured"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Details 对外暴露的原因描述
func (e *Error) Details() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}
