package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/betbot/gobet-signer/clob/client"
	"github.com/betbot/gobet-signer/clob/signing"
	"github.com/betbot/gobet-signer/internal/gateway"
	"github.com/betbot/gobet-signer/internal/relay"
	"github.com/betbot/gobet-signer/internal/server"
	"github.com/betbot/gobet-signer/internal/signer"
	"github.com/betbot/gobet-signer/pkg/config"
	"github.com/betbot/gobet-signer/pkg/logger"
	"github.com/betbot/gobet-signer/pkg/shutdown"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load .env (best-effort). If missing, fall back to real env vars.
	_ = godotenv.Load()

	configPath := flag.String("config", os.Getenv("SIGNER_CONFIG"), "optional YAML/JSON config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("加载配置失败: %v", err)
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		OutputFile: cfg.LogFile,
		MaxBackups: 3,
		MaxAge:     7,
		Compress:   true,
	}); err != nil {
		logrus.Fatalf("初始化日志失败: %v", err)
	}
	log := logger.WithField("component", "signer")

	privateKey, err := signing.PrivateKeyFromHex(cfg.PrivateKey)
	if err != nil {
		log.Fatalf("私钥无效: %v", err)
	}
	builder, err := client.NewOrderBuilder(privateKey, cfg.ChainID, client.BuilderOptions{
		SignatureType: cfg.SignatureType,
		FunderAddress: cfg.FunderAddress,
		TickSize:      cfg.TickSize,
		NegRisk:       cfg.NegRisk,
	})
	if err != nil {
		log.Fatalf("初始化订单构建器失败: %v", err)
	}

	var relayer gateway.Relayer
	if cfg.Relay.Configured() {
		relayer = relay.NewClient(cfg.Relay.URL, cfg.Relay.Token, cfg.Relay.Timeout, logger.WithField("component", "relay"))
	} else {
		log.Warn("RELAY_URL / RELAY_AUTH_TOKEN 未配置，/place 只返回签名订单")
	}

	svc := gateway.NewService(signer.New(builder), relayer, logger.WithField("component", "gateway"))
	srv := server.New(svc, gateway.NewAuthGate(cfg.AuthToken), server.Info{
		Host:    cfg.ClobHost,
		ChainID: cfg.ChainID,
		Address: builder.Address(),
	}, logger.WithField("component", "http"))

	httpSrv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Infof("signer listening on %s (%s)", cfg.ListenAddr, cfg)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	<-stopCh

	shutdownMgr := shutdown.NewManager(logger.WithField("component", "shutdown"))
	shutdownMgr.OnShutdown("logger", func(context.Context) error { return logger.Close() })
	shutdownMgr.OnShutdown("http", httpSrv.Shutdown)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// http 先关闭，等待进行中的转发完成后再关闭日志文件
	logger.Infof("server stopping")
	shutdownMgr.Shutdown(ctx)
}
