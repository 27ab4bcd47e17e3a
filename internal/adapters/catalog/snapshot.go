package catalog

import (
	"fmt"

	"github.com/ayleenrq/urbane/internal/core/domain"
)

// Snapshot - загруженный каталог. Неизменяем после создания,
// поэтому читается из любого числа горутин без блокировок.
type Snapshot struct {
	props []domain.Property
	byID  map[int]int
}

// NewSnapshot проверяет инварианты записей и уникальность ID.
func NewSnapshot(props []domain.Property) (*Snapshot, error) {
	s := &Snapshot{
		props: make([]domain.Property, len(props)),
		byID:  make(map[int]int, len(props)),
	}
	copy(s.props, props)

	for i, p := range s.props {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("catalog snapshot: %w", err)
		}
		if _, dup := s.byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog snapshot: duplicate property id %d: %w", p.ID, domain.ErrInvalidProperty)
		}
		s.byID[p.ID] = i
	}
	return s, nil
}

// All возвращает каталог в исходном порядке. Срез общий - изменять его нельзя.
func (s *Snapshot) All() []domain.Property {
	return s.props
}

func (s *Snapshot) ByID(id int) (domain.Property, bool) {
	i, ok := s.byID[id]
	if !ok {
		return domain.Property{}, false
	}
	return s.props[i], true
}

func (s *Snapshot) Len() int {
	return len(s.props)
}
