package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"
)

var (
	ErrSendFailed   = errors.New("failed to send message")
	ErrEmptyMessage = errors.New("message is empty")
)

const (
	DefaultHost    = "smtp.gmail.com"
	DefaultPort    = 587
	DefaultSubject = "Contact from Game Portal"
	DefaultTimeout = 30 * time.Second
)

// Config holds the fixed parts of every contact message and the SMTP
// account used to send it. The password is never part of Config.
type Config struct {
	Host     string
	Port     int
	From     string
	To       string
	Subject  string
	Username string
	Timeout  time.Duration
}

// SecretSource looks up the SMTP password for a username.
type SecretSource interface {
	Password(username string) (string, error)
}

// Transport delivers composed messages. *mail.Client satisfies it.
type Transport interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// Dialer builds a Transport for one send.
type Dialer func(cfg Config, password string) (Transport, error)

type Option func(*Mailer)

func WithDialer(d Dialer) Option {
	return func(m *Mailer) { m.dial = d }
}

// Mailer sends contact messages to a single fixed recipient.
type Mailer struct {
	cfg     Config
	secrets SecretSource
	dial    Dialer
	log     zerolog.Logger
}

func New(cfg Config, secrets SecretSource, log zerolog.Logger, opts ...Option) *Mailer {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Subject == "" {
		cfg.Subject = DefaultSubject
	}
	if cfg.Username == "" {
		cfg.Username = cfg.From
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	m := &Mailer{
		cfg:     cfg,
		secrets: secrets,
		dial:    dialSMTP,
		log:     log.With().Str("component", "mailer").Logger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Timeout is the upper bound callers should put on a single Send.
func (m *Mailer) Timeout() time.Duration {
	return m.cfg.Timeout
}

// Compose builds the plain-text message for body.
func (m *Mailer) Compose(body string) (*mail.Msg, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyMessage
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return nil, fmt.Errorf("sender address: %w", err)
	}
	if err := msg.To(m.cfg.To); err != nil {
		return nil, fmt.Errorf("recipient address: %w", err)
	}
	msg.Subject(m.cfg.Subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}

// Send composes and delivers one message. Every failure after composition
// is reported as ErrSendFailed.
func (m *Mailer) Send(ctx context.Context, body string) error {
	msg, err := m.Compose(body)
	if err != nil {
		if errors.Is(err, ErrEmptyMessage) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	password, err := m.secrets.Password(m.cfg.Username)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	client, err := m.dial(m.cfg, password)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		m.log.Error().Err(err).Str("host", m.cfg.Host).Int("port", m.cfg.Port).Msg("send failed")
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	m.log.Info().Str("to", m.cfg.To).Msg("contact message sent")
	return nil
}

func dialSMTP(cfg Config, password string) (Transport, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(password),
		mail.WithTimeout(cfg.Timeout),
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}
