package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/machaira/blog/internal/db"
	"github.com/machaira/blog/internal/form"
	"github.com/machaira/blog/internal/mail"
)

var ErrMailDispatch = errors.New("mail dispatch failed")

// ShareService 通过邮件把文章推荐给朋友，不落库。
type ShareService struct {
	mailer mail.Mailer
	from   string
}

// NewShareService creates a ShareService instance.
func NewShareService(mailer mail.Mailer, from string) *ShareService {
	return &ShareService{mailer: mailer, from: from}
}

// ComposeShare 生成推荐邮件，postURL 必须是绝对地址。
func ComposeShare(post db.Post, postURL string, input form.ShareForm, from string) mail.Message {
	return mail.Message{
		From:    from,
		To:      []string{input.To},
		Subject: fmt.Sprintf("%s recommends you read %s", input.Name, post.Title),
		Body:    fmt.Sprintf("Read %s at %s\n\n%s's comments: %s", post.Title, postURL, input.Name, input.Comments),
	}
}

// Share 发送推荐邮件，投递失败时返回包装了 ErrMailDispatch 的错误。
func (s *ShareService) Share(ctx context.Context, post db.Post, postURL string, input form.ShareForm) error {
	if s.mailer == nil {
		return fmt.Errorf("%w: no mailer configured", ErrMailDispatch)
	}
	if err := s.mailer.Send(ctx, ComposeShare(post, postURL, input, s.from)); err != nil {
		return fmt.Errorf("%w: %w", ErrMailDispatch, err)
	}
	return nil
}
