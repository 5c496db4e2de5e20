// Package mail 提供邮件发送的抽象以及 SMTP、控制台和内存三种实现。
package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/machaira/blog/internal/config"
	"github.com/machaira/blog/internal/logging"
)

// Message 是一封纯文本邮件。
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// Mailer 负责投递邮件。
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New 按配置选择发送后端，未知后端返回错误。
func New(cfg config.MailConfig, log logging.Logger) (Mailer, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", "console":
		return NewConsoleMailer(log), nil
	case "smtp":
		return NewSMTPMailer(cfg)
	case "memory":
		return NewOutbox(), nil
	default:
		return nil, fmt.Errorf("unsupported mail backend %q", cfg.Backend)
	}
}

// ConsoleMailer 把邮件写入日志，开发环境使用。
type ConsoleMailer struct {
	log logging.Logger
}

func NewConsoleMailer(log logging.Logger) *ConsoleMailer {
	if log == nil {
		log = logging.Discard()
	}
	return &ConsoleMailer{log: log}
}

func (m *ConsoleMailer) Send(_ context.Context, msg Message) error {
	m.log.Info("mail from=%s to=%s subject=%q\n%s", msg.From, strings.Join(msg.To, ","), msg.Subject, msg.Body)
	return nil
}
