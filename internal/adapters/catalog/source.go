package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ayleenrq/urbane/internal/contextkeys"
	"github.com/ayleenrq/urbane/internal/contracts"
	"github.com/ayleenrq/urbane/internal/core/domain"
	"github.com/ayleenrq/urbane/internal/core/port"
)

//go:embed data/properties.json
var embeddedProperties []byte

// DocumentSource - источник каталога из JSON-документа (встроенного или файла).
type DocumentSource struct {
	name string
	read func() ([]byte, error)
}

// NewEmbeddedSource - мок-каталог, вшитый в бинарник.
func NewEmbeddedSource() *DocumentSource {
	return &DocumentSource{
		name: "embedded",
		read: func() ([]byte, error) { return embeddedProperties, nil },
	}
}

// NewFileSource читает каталог из файла на диске в том же формате.
func NewFileSource(path string) (*DocumentSource, error) {
	if path == "" {
		return nil, fmt.Errorf("catalog: file path cannot be empty")
	}
	return &DocumentSource{
		name: path,
		read: func() ([]byte, error) { return os.ReadFile(path) },
	}, nil
}

// NewBytesSource - каталог из готового документа (тесты, внешние загрузчики).
func NewBytesSource(name string, body []byte) *DocumentSource {
	return &DocumentSource{
		name: name,
		read: func() ([]byte, error) { return body, nil },
	}
}

func (s *DocumentSource) LoadCatalog(ctx context.Context) ([]domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "DocumentCatalogSource",
		"source":    s.name,
	})

	body, err := s.read()
	if err != nil {
		logger.Error("Failed to read catalog document", err, nil)
		return nil, fmt.Errorf("catalog: read %s: %w", s.name, err)
	}

	if err := contracts.Validate(contracts.CatalogV1, body); err != nil {
		logger.Error("Catalog document failed schema validation", err, nil)
		return nil, fmt.Errorf("catalog: %s: %w", s.name, err)
	}

	var doc catalogDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("catalog: decode %s: %w", s.name, err)
	}

	props := make([]domain.Property, 0, len(doc.Properties))
	for _, dto := range doc.Properties {
		p, err := dto.toDomain()
		if err != nil {
			return nil, fmt.Errorf("catalog: %s: %w", s.name, err)
		}
		props = append(props, p)
	}

	logger.Info("Catalog document loaded", port.Fields{"properties": len(props)})
	return props, nil
}
