package usecase

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"deyelegliz/internal/domain/repository"
	"deyelegliz/pkg/logger"
)

// JobsUseCase holds the periodic maintenance tasks.
type JobsUseCase struct {
	userRepo         repository.UserRepository
	verificationRepo repository.PhoneVerificationRepository
	now              Clock
}

func NewJobsUseCase(userRepo repository.UserRepository, verificationRepo repository.PhoneVerificationRepository) *JobsUseCase {
	return &JobsUseCase{
		userRepo:         userRepo,
		verificationRepo: verificationRepo,
		now:              time.Now,
	}
}

// SweepSubscriptions turns off vendor subscriptions past their expiration.
func (uc *JobsUseCase) SweepSubscriptions(ctx context.Context) (int, error) {
	expired, err := uc.userRepo.ListExpiredSubscriptions(ctx, uc.now())
	if err != nil {
		return 0, err
	}

	count := 0
	for _, profile := range expired {
		if err := uc.userRepo.DeactivateSubscription(ctx, profile.ID); err != nil {
			logger.Warn("deactivate subscription for %s failed: %v", profile.ID, err)
			continue
		}
		count++
	}
	return count, nil
}

// CleanupVerifications drops phone verifications past their expiry.
func (uc *JobsUseCase) CleanupVerifications(ctx context.Context) (int, error) {
	return uc.verificationRepo.DeleteExpired(ctx, uc.now())
}

func (uc *JobsUseCase) run(ctx context.Context, name string, job func(context.Context) (int, error)) func() {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("job %s panicked: %v", name, r)
			}
		}()

		jobCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
		defer cancel()

		n, err := job(jobCtx)
		if err != nil {
			logger.Error("job %s failed: %v", name, err)
			return
		}
		if n > 0 {
			logger.Info("job %s processed %d records", name, n)
		}
	}
}

// Start schedules both jobs and stops the scheduler when ctx is done.
func (uc *JobsUseCase) Start(ctx context.Context, sweepSpec, cleanupSpec string) error {
	sched := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	if _, err := sched.AddFunc(sweepSpec, uc.run(ctx, "subscription-sweep", uc.SweepSubscriptions)); err != nil {
		return err
	}
	if _, err := sched.AddFunc(cleanupSpec, uc.run(ctx, "verification-cleanup", uc.CleanupVerifications)); err != nil {
		return err
	}

	sched.Start()
	go func() {
		<-ctx.Done()
		<-sched.Stop().Done()
		logger.Info("scheduled jobs stopped")
	}()
	return nil
}
