// Package gateway 组合规范化、签名与转发，实现 sign / place 两个操作。
package gateway

import (
	"context"

	"github.com/betbot/gobet-signer/internal/order"
	"github.com/sirupsen/logrus"
)

// Service 下单网关
type Service struct {
	signer Signer
	relay  Relayer // 未配置下游时为 nil
	log    *logrus.Entry
}

// NewService 创建网关服务；relay 为 nil 表示下游未配置
func NewService(signer Signer, relay Relayer, log *logrus.Entry) *Service {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Service{signer: signer, relay: relay, log: log}
}

// RelayConfigured 下游是否已配置
func (s *Service) RelayConfigured() bool {
	return s.relay != nil
}

// normalizeAndSign 规范化后签名；规范化失败时不调用签名器
func (s *Service) normalizeAndSign(ctx context.Context, raw map[string]any) (SignedOrder, error) {
	errs, req := order.Normalize(raw)
	if len(errs) > 0 {
		s.log.WithField("errors", errs).Debug("订单参数校验失败")
		return nil, &Error{Kind: KindInvalidInput, Errors: errs}
	}

	signed, err := s.signer.Sign(ctx, req)
	if err != nil {
		s.log.WithFields(logrus.Fields{"tokenID": req.TokenID, "side": req.Side}).Warnf("签名订单失败: %v", err)
		return nil, &Error{Kind: KindSignFailed, Err: err}
	}
	s.log.WithFields(logrus.Fields{"tokenID": req.TokenID, "side": req.Side}).Info("订单已签名")
	return signed, nil
}

// SignOnly 规范化并签名，不联系下游
func (s *Service) SignOnly(ctx context.Context, raw map[string]any) (SignedOrder, error) {
	return s.normalizeAndSign(ctx, raw)
}

// SignAndRelay 规范化、签名并转发，返回下游原始响应
func (s *Service) SignAndRelay(ctx context.Context, raw map[string]any) (*RelayResponse, error) {
	signed, err := s.normalizeAndSign(ctx, raw)
	if err != nil {
		return nil, err
	}
	if s.relay == nil {
		return nil, &Error{Kind: KindMisconfigured, SignedOrder: signed}
	}

	// 转发发出后不随调用方断开而取消
	resp, err := s.relay.Relay(context.WithoutCancel(ctx), signed)
	if err != nil {
		s.log.Warnf("转发订单失败: %v", err)
		return nil, &Error{Kind: KindPlaceFailed, Err: err}
	}
	s.log.WithField("status", resp.Status).Info("订单已转发")
	return resp, nil
}
