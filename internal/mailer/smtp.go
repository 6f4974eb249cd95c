package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	"github.com/dailyshift-dev/shift-notify/backend/internal/config"
	"github.com/dailyshift-dev/shift-notify/backend/internal/domain"
	"github.com/wneessen/go-mail"
)

type SMTP struct {
	cfg    *config.Config
	client *mail.Client
}

func NewSMTP(cfg *config.Config, client *mail.Client) *SMTP {
	return &SMTP{
		cfg:    cfg,
		client: client,
	}
}

// NewSMTPClient 按配置创建 SMTP 客户端并验证能连上邮件服务器
func NewSMTPClient(cfg *config.Config) (*mail.Client, error) {
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		return nil, err
	}

	dialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(dialCtx); err != nil {
		return nil, fmt.Errorf("无法连接到邮件服务器: %w", err)
	}

	return client, nil
}

func (s *SMTP) Send(ctx context.Context, msg *domain.MailMessage) error {
	m, err := BuildMessage(s.cfg, msg)
	if err != nil {
		return err
	}

	return s.client.DialAndSendWithContext(ctx, m)
}

// BuildMessage 根据邮件类型渲染模板并组装邮件，直发和队列消费两条路径共用
func BuildMessage(cfg *config.Config, msg *domain.MailMessage) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(cfg.Email.SMTP.Username); err != nil {
		return nil, fmt.Errorf("无法设置邮件发件人: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("无法设置邮件收件人: %w", err)
	}

	// Data 统一转成 map 再喂给模板
	// 队列那条路径反序列化后本来就是 map，直发路径里则可能还是结构体
	raw, err := json.Marshal(msg.Data)
	if err != nil {
		return nil, fmt.Errorf("无法序列化邮件数据: %w", err)
	}
	data := map[string]any{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("无法解析邮件数据: %w", err)
	}

	switch msg.Type {
	case domain.MailTypeShiftInvite:
		tmpl, err := template.ParseFiles(filepath.Join(cfg.Mailer.TemplateDir, "shift_invite_email.html"))
		if err != nil {
			return nil, fmt.Errorf("无法解析邮件模板: %w", err)
		}
		if err := m.SetBodyHTMLTemplate(tmpl, data); err != nil {
			return nil, fmt.Errorf("无法设置邮件正文: %w", err)
		}
		m.Subject("DailyShift 排班系统 - 新班次邀请")
	default:
		return nil, fmt.Errorf("不支持的邮件类型: %s", msg.Type)
	}

	return m, nil
}
