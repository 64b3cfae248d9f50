package service

import (
	"sync"
	"time"

	"github.com/xiaot623/termmon/internal/policy"
	"github.com/xiaot623/termmon/internal/repository"
)

// Service records and replays command history.
//
// Every store call runs under mu, one operation at a time. Nothing else is
// done while mu is held.
type Service struct {
	mu           sync.Mutex
	store        store.Store
	policyEngine *policy.Engine
	now          func() time.Time
}

func New(store store.Store, policyEngine *policy.Engine) *Service {
	return &Service{
		store:        store,
		policyEngine: policyEngine,
		now:          time.Now,
	}
}
