package notify

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"pandemic-deck/dto"
)

// Publisher 底层只需要 Publish，方便测试替换
type Publisher interface {
	Publish(subject string, data []byte) error
}

// NATSPublisher 把每次变化后的快照发布到 subject
type NATSPublisher struct {
	pub     Publisher
	subject string
	logger  *zap.Logger
}

// Connect 连接 NATS，断线后自动重连
func Connect(url string, logger *zap.Logger) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name("pandemic-deck"),
		nats.Timeout(10 * time.Second),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
	}
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", url, err)
	}
	logger.Info("connected to nats", zap.String("url", nc.ConnectedUrl()))
	return nc, nil
}

func NewNATSPublisher(pub Publisher, subject string, logger *zap.Logger) *NATSPublisher {
	return &NATSPublisher{pub: pub, subject: subject, logger: logger}
}

// Notify 实现 service.Notifier。发布失败只记录日志，不影响已经接受的操作
func (p *NATSPublisher) Notify(snapshot dto.Snapshot) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		p.logger.Error("marshal snapshot failed", zap.Error(err))
		return
	}
	if err := p.pub.Publish(p.subject, data); err != nil {
		p.logger.Warn("publish snapshot failed",
			zap.String("subject", p.subject),
			zap.Int("revision", snapshot.Revision),
			zap.Error(err))
	}
}
