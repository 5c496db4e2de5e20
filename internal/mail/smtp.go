package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/machaira/blog/internal/config"
	gomail "github.com/wneessen/go-mail"
)

// SMTPMailer 通过 SMTP 服务器投递邮件。
type SMTPMailer struct {
	cfg  config.MailConfig
	opts []gomail.Option
}

// NewSMTPMailer 校验配置并准备客户端参数，连接在每次发送时建立。
func NewSMTPMailer(cfg config.MailConfig) (*SMTPMailer, error) {
	if strings.TrimSpace(cfg.Host) == "" {
		return nil, errors.New("smtp host is required")
	}

	opts := []gomail.Option{
		gomail.WithTimeout(cfg.MailTimeout()),
	}
	if cfg.Port > 0 {
		opts = append(opts, gomail.WithPort(cfg.Port))
	}

	switch strings.ToLower(strings.TrimSpace(cfg.TLS)) {
	case "ssl":
		opts = append(opts, gomail.WithSSL())
	case "mandatory":
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	case "none":
		opts = append(opts, gomail.WithTLSPolicy(gomail.NoTLS))
	default:
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}

	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	return &SMTPMailer{cfg: cfg, opts: opts}, nil
}

// Send 构造 MIME 邮件并在 ctx 期限内完成投递。
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	out, err := buildMessage(msg, m.cfg.From)
	if err != nil {
		return err
	}

	client, err := gomail.NewClient(m.cfg.Host, m.opts...)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, out); err != nil {
		return fmt.Errorf("send mail via %s: %w", m.cfg.Host, err)
	}
	return nil
}

func buildMessage(msg Message, defaultFrom string) (*gomail.Msg, error) {
	from := msg.From
	if strings.TrimSpace(from) == "" {
		from = defaultFrom
	}
	if len(msg.To) == 0 {
		return nil, errors.New("mail has no recipients")
	}

	out := gomail.NewMsg()
	if err := out.From(from); err != nil {
		return nil, fmt.Errorf("invalid from address %q: %w", from, err)
	}
	if err := out.To(msg.To...); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	out.Subject(msg.Subject)
	out.SetDate()
	out.SetMessageIDWithValue(uuid.NewString() + "@" + domainOf(from))
	out.SetBodyString(gomail.TypeTextPlain, msg.Body)
	return out, nil
}

func domainOf(addr string) string {
	if i := strings.LastIndex(addr, "@"); i >= 0 && i < len(addr)-1 {
		return strings.Trim(addr[i+1:], "> ")
	}
	return "localhost"
}
