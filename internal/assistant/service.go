package assistant

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultReplyDelay is the conversational pause before a reply is produced.
const DefaultReplyDelay = 800 * time.Millisecond

// AgentClient produces the assistant's reply to question. history is the
// conversation as stored when the reply is due and may already hold later
// messages, or none if it was cleared.
type AgentClient interface {
	Reply(ctx context.Context, history []Message, question Message) (Message, error)
}

type Service interface {
	StartConversation(ctx context.Context) (*Conversation, error)
	GetConversation(ctx context.Context, id uuid.UUID) (*Conversation, error)
	Submit(ctx context.Context, id uuid.UUID, text string) (*PendingReply, error)
	SendMessage(ctx context.Context, id uuid.UUID, text string) (*Conversation, error)
	ClearHistory(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo   Repository
	agent  AgentClient
	clock  Clock
	delay  time.Duration
	logger *zap.Logger

	// mu serializes load-append-save on conversations.
	mu sync.Mutex
}

func NewService(repo Repository, agent AgentClient, clock Clock, delay time.Duration, logger *zap.Logger) Service {
	if clock == nil {
		clock = RealClock()
	}
	return &service{
		repo:   repo,
		agent:  agent,
		clock:  clock,
		delay:  delay,
		logger: logger,
	}
}

func (s *service) StartConversation(ctx context.Context) (*Conversation, error) {
	now := s.clock.Now()
	c := &Conversation{
		ID:        uuid.New(),
		History:   []Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetConversation(ctx context.Context, id uuid.UUID) (*Conversation, error) {
	return s.repo.GetByID(ctx, id)
}

// Submit stores the user message right away and schedules the reply after
// the configured delay. Cancelling ctx before the reply is stored discards
// it; the user message stays.
func (s *service) Submit(ctx context.Context, id uuid.UUID, text string) (*PendingReply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	s.mu.Lock()
	c, err := s.append(ctx, id, Message{Role: RoleUser, Content: text})
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	question := c.History[len(c.History)-1]

	p := newPendingReply()
	timer := s.clock.AfterFunc(s.delay, func() {
		s.reply(ctx, id, question, p)
	})

	p.mu.Lock()
	defer p.mu.Unlock()
	// a clock may run the continuation before AfterFunc returns
	if p.started {
		return p, nil
	}
	p.release = context.AfterFunc(ctx, func() {
		if timer.Stop() {
			s.logger.Debug("Pending reply discarded", zap.String("conversation_id", id.String()))
			p.finish(nil, ctx.Err())
		}
	})
	return p, nil
}

func (s *service) SendMessage(ctx context.Context, id uuid.UUID, text string) (*Conversation, error) {
	p, err := s.Submit(ctx, id, text)
	if err != nil {
		return nil, err
	}
	return p.Wait(ctx)
}

func (s *service) ClearHistory(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	c.History = []Message{}
	c.UpdatedAt = s.clock.Now()
	return s.repo.Save(ctx, c)
}

// reply runs on the timer goroutine once the delay has elapsed and answers
// question, the user message stored by Submit.
func (s *service) reply(ctx context.Context, id uuid.UUID, question Message, p *PendingReply) {
	p.mu.Lock()
	p.started = true
	release := p.release
	p.mu.Unlock()
	if release != nil {
		defer release()
	}

	if err := ctx.Err(); err != nil {
		p.finish(nil, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		p.finish(nil, err)
		return
	}
	msg, err := s.agent.Reply(ctx, c.History, question)
	if err != nil {
		s.logger.Error("Agent reply failed", zap.String("conversation_id", id.String()), zap.Error(err))
		p.finish(nil, fmt.Errorf("agent reply: %w", err))
		return
	}
	// torn down while the reply was computed
	if err := ctx.Err(); err != nil {
		p.finish(nil, err)
		return
	}
	msg.Role = RoleAssistant
	c, err = s.appendTo(ctx, c, msg)
	if err != nil {
		p.finish(nil, err)
		return
	}
	s.logger.Debug("Reply stored",
		zap.String("conversation_id", id.String()),
		zap.Int("sources", len(msg.Sources)),
	)
	p.finish(c, nil)
}

func (s *service) append(ctx context.Context, id uuid.UUID, msg Message) (*Conversation, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.appendTo(ctx, c, msg)
}

func (s *service) appendTo(ctx context.Context, c *Conversation, msg Message) (*Conversation, error) {
	now := s.clock.Now()
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = now
	}
	c.History = append(c.History, msg)
	c.UpdatedAt = now
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// PendingReply is the outcome of a Submit whose reply has not been stored
// yet.
type PendingReply struct {
	done chan struct{}
	once sync.Once

	mu      sync.Mutex
	started bool
	release func() bool

	conv *Conversation
	err  error
}

func newPendingReply() *PendingReply {
	return &PendingReply{done: make(chan struct{})}
}

func (p *PendingReply) finish(c *Conversation, err error) {
	p.once.Do(func() {
		p.conv, p.err = c, err
		close(p.done)
	})
}

// Done is closed once the reply has been stored or discarded.
func (p *PendingReply) Done() <-chan struct{} {
	return p.done
}

// Result returns the conversation including the reply. It is only
// meaningful after Done is closed.
func (p *PendingReply) Result() (*Conversation, error) {
	select {
	case <-p.done:
		return p.conv, p.err
	default:
		return nil, fmt.Errorf("reply still pending")
	}
}

func (p *PendingReply) Wait(ctx context.Context) (*Conversation, error) {
	select {
	case <-p.done:
		return p.conv, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
