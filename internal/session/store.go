package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type sessionRecord struct {
	ID        uint `gorm:"primaryKey"`
	Token     string
	UserID    int64
	Email     string
	Role      string
	CreatedAt int64
}

// Store keeps the active session in memory and mirrors it to a local sqlite
// file so the credential survives a restart. Components that need to react to
// a forced logout subscribe via OnInvalidate; the store itself never issues
// requests.
type Store struct {
	db  *gorm.DB
	log *slog.Logger

	mu      sync.Mutex
	current *Session
	subs    []func()
}

func Open(path string, log *slog.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	if err := db.AutoMigrate(&sessionRecord{}); err != nil {
		return nil, fmt.Errorf("migrate session db: %w", err)
	}

	s := &Store{db: db, log: log}
	if err := s.restore(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) restore() error {
	var rec sessionRecord
	err := s.db.Order("id desc").First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("restore session: %w", err)
	}

	if tokenExpired(rec.Token) {
		s.log.Info("stored session expired, discarding", "email", rec.Email)
		return s.db.Where("1 = 1").Delete(&sessionRecord{}).Error
	}

	s.current = &Session{
		Token: rec.Token,
		User:  User{ID: rec.UserID, Email: rec.Email, Role: rec.Role},
	}
	s.log.Info("session restored", "email", rec.Email, "role", rec.Role)
	return nil
}

// tokenExpired reports whether the token carries a JWT exp claim in the past.
// The signature is not checked here, that is the backend's job; an opaque or
// claimless token is kept and left for the backend to accept or reject.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

func (s *Store) Login(user User, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Where("1 = 1").Delete(&sessionRecord{}).Error; err != nil {
		return fmt.Errorf("clear previous session: %w", err)
	}
	rec := sessionRecord{
		Token:     token,
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: time.Now().Unix(),
	}
	if err := s.db.Create(&rec).Error; err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.current = &Session{Token: token, User: user}
	s.log.Info("session established", "email", user.Email, "role", user.Role)
	return nil
}

func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked()
}

func (s *Store) clearLocked() error {
	s.current = nil
	if err := s.db.Where("1 = 1").Delete(&sessionRecord{}).Error; err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Store) Current() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Session{}, false
	}
	return *s.current, true
}

// Token implements backend.TokenSource.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// OnInvalidate registers a callback fired whenever the session is forcibly
// destroyed because a backend rejected the credential.
func (s *Store) OnInvalidate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Invalidate implements backend.TokenSource: a 401 from any backend destroys
// the session process-wide and notifies subscribers.
func (s *Store) Invalidate() {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return
	}
	if err := s.clearLocked(); err != nil {
		s.log.Error("session invalidation", "error", err)
	}
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
