package mailer

import (
	"context"

	"github.com/dailyshift-dev/shift-notify/backend/internal/domain"
)

// QueueName 邮件队列的名字，发布方和 cmd/mail 的消费方共用
const QueueName = "email_queue"

// Mailer 是通知服务的接口
// Queue 实现只负责投递到消息队列，真正的发送在 cmd/mail
// SMTP 实现直接发送，给没有消息队列的部署用
type Mailer interface {
	Send(ctx context.Context, msg *domain.MailMessage) error
}
