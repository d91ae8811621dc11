package services

import (
	"context"
	"log"
	"time"

	"github.com/DrNytkenstien/secureauth/domain"
)

// CleanupService periodically removes expired OTP and session records.
// Expiry is already enforced lazily on every read; the sweep only reclaims
// space, so any cadence is safe.
type CleanupService struct {
	otpRepo     domain.OTPRepository
	sessionRepo domain.SessionRepository
	interval    time.Duration
	stop        chan struct{}
	done        chan struct{}
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(otpRepo domain.OTPRepository, sessionRepo domain.SessionRepository, interval time.Duration) *CleanupService {
	return &CleanupService{
		otpRepo:     otpRepo,
		sessionRepo: sessionRepo,
		interval:    interval,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Start launches the background sweep loop
func (s *CleanupService) Start() {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.Sweep(context.Background(), time.Now())
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop terminates the sweep loop and waits for it to exit
func (s *CleanupService) Stop() {
	close(s.stop)
	<-s.done
}

// Sweep removes expired records from both stores
func (s *CleanupService) Sweep(ctx context.Context, now time.Time) {
	if err := s.otpRepo.DeleteExpired(ctx, now); err != nil {
		log.Printf("OTP_SWEEP_FAILED: error=%v", err)
	}
	if err := s.sessionRepo.DeleteExpired(ctx, now); err != nil {
		log.Printf("SESSION_SWEEP_FAILED: error=%v", err)
	}
}
