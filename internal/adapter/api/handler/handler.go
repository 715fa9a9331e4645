package handler

import (
	"flicklit/internal/usecase"
)

var (
	authHandler        *AuthHandler
	mediaHandler       *MediaHandler
	statsHandler       *StatsHandler
	achievementHandler *AchievementHandler
	catalogHandler     *CatalogHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	mediaUseCase *usecase.MediaItemUseCase,
	statsUseCase *usecase.StatsUseCase,
	achievementUseCase *usecase.AchievementUseCase,
	catalogUseCase *usecase.CatalogUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	mediaHandler = NewMediaHandler(mediaUseCase)
	statsHandler = NewStatsHandler(statsUseCase)
	achievementHandler = NewAchievementHandler(achievementUseCase)
	catalogHandler = NewCatalogHandler(catalogUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetMediaHandler() *MediaHandler {
	return mediaHandler
}

func GetStatsHandler() *StatsHandler {
	return statsHandler
}

func GetAchievementHandler() *AchievementHandler {
	return achievementHandler
}

func GetCatalogHandler() *CatalogHandler {
	return catalogHandler
}
