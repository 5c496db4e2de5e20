package mail

import (
	"context"
	"sync"
)

// Outbox 把邮件保存在内存中，测试里用来断言发出的内容。
type Outbox struct {
	mu       sync.Mutex
	messages []Message
	err      error
}

func NewOutbox() *Outbox {
	return &Outbox{}
}

func (o *Outbox) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return o.err
	}
	o.messages = append(o.messages, msg)
	return nil
}

// FailWith 让后续发送都返回 err，传 nil 恢复正常。
func (o *Outbox) FailWith(err error) {
	o.mu.Lock()
	o.err = err
	o.mu.Unlock()
}

// Messages 返回已发送邮件的副本。
func (o *Outbox) Messages() []Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Message(nil), o.messages...)
}
