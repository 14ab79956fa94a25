package handler

import (
	"deyelegliz/internal/infrastructure/session"
	"deyelegliz/internal/usecase"
)

var (
	navigationHandler *NavigationHandler
	authHandler       *AuthHandler
	productHandler    *ProductHandler
	requestHandler    *RequestHandler
	merchantHandler   *MerchantHandler
)

func Setup(
	navigationUseCase *usecase.NavigationUseCase,
	authUseCase *usecase.AuthUseCase,
	listingUseCase *usecase.ListingUseCase,
	offerUseCase *usecase.OfferUseCase,
	requestUseCase *usecase.RequestUseCase,
	merchantUseCase *usecase.MerchantUseCase,
	onboarding *session.OnboardingStore,
) {
	navigationHandler = NewNavigationHandler(navigationUseCase, onboarding)
	authHandler = NewAuthHandler(authUseCase)
	productHandler = NewProductHandler(listingUseCase, offerUseCase)
	requestHandler = NewRequestHandler(listingUseCase, requestUseCase)
	merchantHandler = NewMerchantHandler(merchantUseCase, offerUseCase)
}

func GetNavigationHandler() *NavigationHandler {
	return navigationHandler
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetProductHandler() *ProductHandler {
	return productHandler
}

func GetRequestHandler() *RequestHandler {
	return requestHandler
}

func GetMerchantHandler() *MerchantHandler {
	return merchantHandler
}
