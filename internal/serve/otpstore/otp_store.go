// Package otpstore keeps the per-user OTP and password of the stub reset-pin server in memory.
package otpstore

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize bounds how many users the store remembers. The least recently used one is evicted first.
const DefaultSize = 1024

// otpUpperBound makes generated OTPs fall in [0, 10000).
const otpUpperBound = 10000

var ErrInvalidOTP = errors.New("invalid OTP")

type Account struct {
	OTP      string
	Password string
}

// Store is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	accounts *lru.Cache[string, Account]
}

func NewStore(size int) (*Store, error) {
	accounts, err := lru.New[string, Account](size)
	if err != nil {
		return nil, fmt.Errorf("creating lru cache: %w", err)
	}
	return &Store{accounts: accounts}, nil
}

// AddAccount registers the user with the given OTP, replacing any existing account.
func (s *Store) AddAccount(username, otp string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts.Add(username, Account{OTP: otp})
}

// SetOTP replaces the OTP of an existing user. It reports false, and changes nothing, for unknown users.
func (s *Store) SetOTP(username, otp string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts.Peek(username)
	if !ok {
		return false
	}
	account.OTP = otp
	s.accounts.Add(username, account)
	return true
}

// ResetPassword sets a new password when otp matches the user's current OTP.
// The OTP is left in place, as the reset-pin API does.
func (s *Store) ResetPassword(username, otp, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts.Get(username)
	if !ok || account.OTP == "" || account.OTP != otp {
		return ErrInvalidOTP
	}

	account.Password = password
	s.accounts.Add(username, account)
	return nil
}

func (s *Store) Get(username string) (Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.accounts.Peek(username)
}

// RandomOTP returns a uniformly random OTP in [0, 10000), rendered without zero padding.
func RandomOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpUpperBound))
	if err != nil {
		return "", fmt.Errorf("reading random number: %w", err)
	}
	return strconv.FormatInt(n.Int64(), 10), nil
}
