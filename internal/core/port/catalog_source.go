package port

import (
	"context"

	"github.com/ayleenrq/urbane/internal/core/domain"
)

// CatalogSourcePort - внешний источник каталога. Вызывается один раз при старте.
type CatalogSourcePort interface {
	LoadCatalog(ctx context.Context) ([]domain.Property, error)
}

// CatalogReaderPort - доступ к уже загруженному каталогу только на чтение.
type CatalogReaderPort interface {
	All() []domain.Property
	ByID(id int) (domain.Property, bool)
}

// MarketingContentPort - статичный контент главной страницы.
type MarketingContentPort interface {
	MarketingContent(ctx context.Context) (*domain.MarketingContent, error)
}
