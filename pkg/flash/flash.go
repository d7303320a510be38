package flash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const minSecretLength = 32

// Kind classifies a message for styling.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Info    Kind = "info"
)

// Message is a flash message.
type Message struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// Config configures the flash cookie.
type Config struct {
	// Secrets is a comma-separated list; the first one signs.
	Secrets string `env:"FLASH_SECRETS"`
	Name    string `env:"FLASH_COOKIE" envDefault:"flash"`
	Path    string `env:"FLASH_PATH" envDefault:"/"`
	Secure  bool   `env:"FLASH_SECURE" envDefault:"false"`
	MaxAge  int    `env:"FLASH_MAX_AGE" envDefault:"300"`
}

func (c Config) secrets() []string {
	var out []string
	for s := range strings.SplitSeq(c.Secrets, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Manager reads and writes flash cookies.
type Manager struct {
	cfg     Config
	secrets []string
}

// New validates the secrets of cfg. Each must be at least 32 characters.
func New(cfg Config) (*Manager, error) {
	secrets := cfg.secrets()
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}
	for i, s := range secrets {
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d", ErrSecretTooShort, i, len(s), minSecretLength)
		}
	}
	if cfg.Name == "" {
		cfg.Name = "flash"
	}
	if cfg.Path == "" {
		cfg.Path = "/"
	}
	return &Manager{cfg: cfg, secrets: secrets}, nil
}

// Set stores msg, replacing any pending message.
func (m *Manager) Set(w http.ResponseWriter, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("flash: encoding message: %w", err)
	}
	http.SetCookie(w, m.cookie(m.sign(data), m.cfg.MaxAge))
	return nil
}

// Pop returns the pending message and clears it. Tampered or malformed cookies
// are cleared and reported as absent.
func (m *Manager) Pop(w http.ResponseWriter, r *http.Request) (Message, bool) {
	c, err := r.Cookie(m.cfg.Name)
	if err != nil {
		return Message{}, false
	}
	http.SetCookie(w, m.cookie("", -1))

	msg, err := m.decode(c.Value)
	if err != nil {
		return Message{}, false
	}
	return msg, true
}

func (m *Manager) decode(value string) (Message, error) {
	data, err := m.verify(value)
	if err != nil {
		return Message{}, err
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Message{}, errors.Join(ErrInvalidFormat, err)
	}
	return msg, nil
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.cfg.Name,
		Value:    value,
		Path:     m.cfg.Path,
		MaxAge:   maxAge,
		Secure:   m.cfg.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func mac(secret string, data []byte) []byte {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(data)
	return h.Sum(nil)
}

func (m *Manager) sign(data []byte) string {
	enc := base64.RawURLEncoding
	return enc.EncodeToString(data) + "." + enc.EncodeToString(mac(m.secrets[0], data))
}

func (m *Manager) verify(signed string) ([]byte, error) {
	payload, sig, ok := strings.Cut(signed, ".")
	if !ok {
		return nil, ErrInvalidFormat
	}
	enc := base64.RawURLEncoding
	data, err := enc.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	want, err := enc.DecodeString(sig)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	for _, s := range m.secrets {
		if hmac.Equal(want, mac(s, data)) {
			return data, nil
		}
	}
	return nil, ErrInvalidSignature
}
