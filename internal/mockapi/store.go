package mockapi

import (
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/codemonk/internal/common"
)

var (
	errEmailTaken     = errors.New("email already registered")
	errStudentIDTaken = errors.New("student id already registered")
	errBadCredentials = errors.New("invalid email or password")
	errNoPendingOTP   = errors.New("no pending otp")
	errOTPExpired     = errors.New("otp expired")
	errOTPMismatch    = errors.New("otp mismatch")
	errOTPExhausted   = errors.New("too many attempts")
)

// account is a registered user. Numeric ids mirror the real backend.
type account struct {
	ID           int64
	Name         string
	Email        string
	Role         string
	StudentID    string
	Phone        string
	WhatsApp     string
	Branch       string
	Year         string
	passwordHash []byte
}

type pendingOTP struct {
	code      string
	name      string
	expiresAt time.Time
	attempts  int
}

// memoryStore holds all backend state. Emails are keyed lower-cased.
type memoryStore struct {
	mu         sync.Mutex
	nextID     int64
	users      map[string]*account
	studentIDs map[string]string
	sessions   map[string]string
	otps       map[string]*pendingOTP
	outbox     map[string]string
	bcryptCost int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		nextID:     1,
		users:      map[string]*account{},
		studentIDs: map[string]string{},
		sessions:   map[string]string{},
		otps:       map[string]*pendingOTP{},
		outbox:     map[string]string{},
		bcryptCost: bcrypt.MinCost,
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *memoryStore) emailTaken(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[emailKey(email)]
	return ok
}

func (s *memoryStore) createUser(a account, password string) (account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return account{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := emailKey(a.Email)
	if _, ok := s.users[key]; ok {
		return account{}, errEmailTaken
	}
	if a.StudentID != "" {
		if _, ok := s.studentIDs[a.StudentID]; ok {
			return account{}, errStudentIDTaken
		}
		s.studentIDs[a.StudentID] = key
	}

	a.ID = s.nextID
	s.nextID++
	if a.Role == "" {
		a.Role = "student"
	}
	a.passwordHash = hash
	s.users[key] = &a
	return a, nil
}

func (s *memoryStore) authenticate(email, password string) (account, error) {
	s.mu.Lock()
	a, ok := s.users[emailKey(email)]
	var hash []byte
	if ok {
		hash = a.passwordHash
	}
	s.mu.Unlock()

	if !ok {
		return account{}, errBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return account{}, errBadCredentials
	}
	return s.copyOf(email)
}

func (s *memoryStore) copyOf(email string) (account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.users[emailKey(email)]
	if !ok {
		return account{}, common.ErrorNotFound
	}
	return *a, nil
}

func (s *memoryStore) updateUser(email string, apply func(*account)) (account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.users[emailKey(email)]
	if !ok {
		return account{}, common.ErrorNotFound
	}
	apply(a)
	return *a, nil
}

func (s *memoryStore) openSession(email string) (string, error) {
	token, err := common.MakeRandHexString(32)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.sessions[token] = emailKey(email)
	s.mu.Unlock()
	return token, nil
}

func (s *memoryStore) sessionEmail(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.sessions[token]
	return email, ok
}

func (s *memoryStore) closeSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// revokeSessions drops every bearer token issued for email.
func (s *memoryStore) revokeSessions(email string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := emailKey(email)
	n := 0
	for tok, owner := range s.sessions {
		if owner == key {
			delete(s.sessions, tok)
			n++
		}
	}
	return n
}

func (s *memoryStore) putOTP(email, name, code string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := emailKey(email)
	s.otps[key] = &pendingOTP{code: code, name: name, expiresAt: expiresAt}
	s.outbox[key] = code
}

func (s *memoryStore) pendingName(email string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.otps[emailKey(email)]
	if !ok {
		return "", false
	}
	return p.name, true
}

// checkOTP consumes the pending code on success. A wrong guess counts
// against maxAttempts; an exhausted or expired code is dropped.
func (s *memoryStore) checkOTP(email, code string, maxAttempts int, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := emailKey(email)
	p, ok := s.otps[key]
	if !ok {
		return errNoPendingOTP
	}
	if !now.Before(p.expiresAt) {
		delete(s.otps, key)
		return errOTPExpired
	}
	if p.code != code {
		p.attempts++
		if p.attempts >= maxAttempts {
			delete(s.otps, key)
			return errOTPExhausted
		}
		return errOTPMismatch
	}
	delete(s.otps, key)
	return nil
}

func (s *memoryStore) lastOTP(email string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.outbox[emailKey(email)]
	return code, ok
}
