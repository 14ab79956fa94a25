package usecase

import (
	"context"
	stderrors "errors"

	"deyelegliz/internal/domain/repository"
	"deyelegliz/internal/domain/service"
	"deyelegliz/pkg/errors"
	"deyelegliz/pkg/logger"
)

type NavigationUseCase struct {
	userRepo     repository.UserRepository
	firebaseAuth FirebaseAuthClient
}

func NewNavigationUseCase(userRepo repository.UserRepository, firebaseAuth FirebaseAuthClient) *NavigationUseCase {
	return &NavigationUseCase{
		userRepo:     userRepo,
		firebaseAuth: firebaseAuth,
	}
}

// ResolveAuth maps a bearer token to the gate's auth state. Only an
// unreachable auth backend or profile store leaves the state unresolved.
func (uc *NavigationUseCase) ResolveAuth(ctx context.Context, token string) service.AuthState {
	if token == "" {
		return service.AuthState{Status: service.AuthLoggedOut}
	}

	uid, err := uc.firebaseAuth.VerifyToken(ctx, token)
	if err != nil {
		if stderrors.Is(err, errors.ErrAuthUnavailable) {
			logger.Warn("token verification unavailable: %v", err)
			return service.AuthState{Status: service.AuthUnresolved}
		}
		return service.AuthState{Status: service.AuthLoggedOut}
	}

	state := service.AuthState{Status: service.AuthLoggedIn, UID: uid}
	_, err = uc.userRepo.GetByID(ctx, uid)
	switch {
	case err == nil:
		state.ProfileExists = true
	case errors.Is(err, errors.CodeNotFound):
	default:
		logger.Warn("profile lookup for %s failed: %v", uid, err)
		return service.AuthState{Status: service.AuthUnresolved, UID: uid}
	}
	return state
}

func (uc *NavigationUseCase) Decide(ctx context.Context, onboardingComplete bool, token, route string) service.GateDecision {
	return service.Decide(service.GateInput{
		OnboardingComplete: onboardingComplete,
		Auth:               uc.ResolveAuth(ctx, token),
		Route:              route,
	})
}
