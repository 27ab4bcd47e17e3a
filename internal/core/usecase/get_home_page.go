package usecase

import (
	"context"
	"fmt"

	"github.com/ayleenrq/urbane/internal/contextkeys"
	"github.com/ayleenrq/urbane/internal/core/domain"
	"github.com/ayleenrq/urbane/internal/core/port"
	"github.com/ayleenrq/urbane/internal/core/port/usecases_port"
)

type GetHomePageUseCase struct {
	content  port.MarketingContentPort
	featured usecases_port.GetFeaturedPropertiesUseCase
}

func NewGetHomePageUseCase(content port.MarketingContentPort, featured usecases_port.GetFeaturedPropertiesUseCase) *GetHomePageUseCase {
	return &GetHomePageUseCase{content: content, featured: featured}
}

func (uc *GetHomePageUseCase) Execute(ctx context.Context) (*domain.HomePage, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "GetHomePage",
	})

	content, err := uc.content.MarketingContent(ctx)
	if err != nil {
		ucLogger.Error("Failed to load marketing content", err, nil)
		return nil, fmt.Errorf("home page: %w", err)
	}

	featured, err := uc.featured.Execute(ctx)
	if err != nil {
		ucLogger.Error("Failed to load featured properties", err, nil)
		return nil, fmt.Errorf("home page: %w", err)
	}

	ucLogger.Debug("Use case finished successfully", port.Fields{
		"featured": len(featured),
		"markers":  len(content.Map.Markers),
	})

	return &domain.HomePage{
		HeroSlides:   content.HeroSlides,
		Featured:     featured,
		Testimonials: content.Testimonials,
		FAQ:          content.FAQ,
		Stats:        content.Stats,
		Map:          content.Map,
	}, nil
}

type GetMapMarkersUseCase struct {
	content port.MarketingContentPort
}

func NewGetMapMarkersUseCase(content port.MarketingContentPort) *GetMapMarkersUseCase {
	return &GetMapMarkersUseCase{content: content}
}

func (uc *GetMapMarkersUseCase) Execute(ctx context.Context) (*domain.MapView, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "GetMapMarkers",
	})

	content, err := uc.content.MarketingContent(ctx)
	if err != nil {
		ucLogger.Error("Failed to load marketing content", err, nil)
		return nil, fmt.Errorf("map markers: %w", err)
	}

	view := content.Map
	ucLogger.Debug("Use case finished successfully", port.Fields{"markers": len(view.Markers)})
	return &view, nil
}
