package identity

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"shulchan/pkg/sentinel"
)

type memoryCredential struct {
	Credential
	passwordHash []byte
}

// MemoryProvider keeps credentials in a map. Default backend for development
// and tests.
type MemoryProvider struct {
	mu      sync.RWMutex
	byEmail map[string]memoryCredential
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{byEmail: make(map[string]memoryCredential)}
}

func (p *MemoryProvider) CreateUser(_ context.Context, email, password string) (Credential, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Credential{}, err
	}

	key := strings.ToLower(email)

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.byEmail[key]; exists {
		return Credential{}, ErrEmailTaken
	}

	cred := Credential{
		ID:        uuid.NewString(),
		Email:     key,
		CreatedAt: time.Now(),
	}
	p.byEmail[key] = memoryCredential{Credential: cred, passwordHash: hash}
	return cred, nil
}

func (p *MemoryProvider) DeleteUser(_ context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for key, c := range p.byEmail {
		if c.ID == id {
			delete(p.byEmail, key)
			return nil
		}
	}
	return sentinel.ErrNotFound
}

func (p *MemoryProvider) Authenticate(_ context.Context, email, password string) (Credential, error) {
	p.mu.RLock()
	c, ok := p.byEmail[strings.ToLower(email)]
	p.mu.RUnlock()
	if !ok {
		return Credential{}, sentinel.ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword(c.passwordHash, []byte(password)); err != nil {
		return Credential{}, sentinel.ErrNotFound
	}
	return c.Credential, nil
}
