// Package premium implements premium entitlement decisions and the
// background expiry sweep.
package premium

import (
	"fmt"
	"sync"
	"time"

	"github.com/ValuamorSystems/ValuamorBotGo/pkg/logger"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/models"
)

// BuyerStore is the slice of the database layer the sweeper needs.
type BuyerStore interface {
	ListPremiumBuyers() ([]*models.PremiumBuyer, error)
	SavePremiumBuyer(record *models.PremiumBuyer) (*models.PremiumBuyer, error)
}

// Notifier delivers the one-shot expiry notice. Failures are logged and
// never retried.
type Notifier interface {
	NotifyExpired(record *models.PremiumBuyer) error
}

// Sweeper periodically flags premium records whose time ran out.
type Sweeper struct {
	store    BuyerStore
	notifier Notifier
	mu       sync.Mutex
	stopChan chan struct{}
	running  bool
}

// NewSweeper creates a Sweeper over the given store and notifier. The
// notifier may be nil.
func NewSweeper(store BuyerStore, notifier Notifier) *Sweeper {
	return &Sweeper{
		store:    store,
		notifier: notifier,
		stopChan: make(chan struct{}),
	}
}

// Start launches the background sweep at the given interval. A running
// sweeper is restarted.
func (s *Sweeper) Start(interval time.Duration) {
	s.mu.Lock()
	if s.running {
		close(s.stopChan)
	}
	s.running = true
	s.stopChan = make(chan struct{})
	stopChan := s.stopChan
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		logger.Info("Expiry sweep started (interval: "+interval.String()+")", "Premium")

		for {
			select {
			case <-ticker.C:
				if _, err := s.SweepExpirations(time.Now().UnixMilli()); err != nil {
					logger.Error("Expiry sweep failed: "+err.Error(), "Premium")
				}
			case <-stopChan:
				logger.Info("Expiry sweep stopped", "Premium")
				return
			}
		}
	}()
}

// Stop halts the background sweep.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		close(s.stopChan)
		s.running = false
	}
}

// SweepExpirations flips every due record to expired and notifies the
// buyer once. Records already flagged are skipped, so repeated sweeps are
// idempotent. It returns how many records were flagged this pass.
func (s *Sweeper) SweepExpirations(now int64) (int, error) {
	records, err := s.store.ListPremiumBuyers()
	if err != nil {
		return 0, err
	}

	flagged := 0
	for _, record := range records {
		if !record.ShouldExpireAt(now) {
			continue
		}
		if !record.MarkExpired(now) {
			continue
		}

		if _, err := s.store.SavePremiumBuyer(record); err != nil {
			logger.Error(fmt.Sprintf("Failed to persist expiry for %s: %v", record.UserID, err), "Premium")
			continue
		}
		flagged++

		if s.notifier != nil {
			if err := s.notifier.NotifyExpired(record); err != nil {
				logger.Warn(fmt.Sprintf("Expiry notice for %s failed: %v", record.UserID, err), "Premium")
			}
		}
	}

	if flagged > 0 {
		logger.Info(fmt.Sprintf("Expiry sweep flagged %d record(s)", flagged), "Premium")
	}
	return flagged, nil
}
