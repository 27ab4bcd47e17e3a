package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ayleenrq/urbane/internal/core/domain"
)

// Apply разбирает значение команды и вызывает соответствующий метод Store.
func Apply(s *Store, cmd domain.SessionCommand) (domain.ViewModel, error) {
	switch cmd.Op {
	case domain.OpSetTab:
		mode, err := domain.ParseListingMode(cmd.Value)
		if err != nil {
			return domain.ViewModel{}, err
		}
		return s.SetTab(mode)

	case domain.OpSetType:
		t, err := parseTypeFilter(cmd.Value)
		if err != nil {
			return domain.ViewModel{}, err
		}
		return s.SetTypeFilter(t)

	case domain.OpSetMaxPrice:
		price, err := strconv.ParseFloat(strings.TrimSpace(cmd.Value), 64)
		if err != nil {
			return domain.ViewModel{}, fmt.Errorf("max price %q: %w", cmd.Value, domain.ErrInvalidFilter)
		}
		return s.SetMaxPrice(price)

	case domain.OpSetBeds:
		beds, err := domain.ParseBedsFilter(cmd.Value)
		if err != nil {
			return domain.ViewModel{}, err
		}
		return s.SetBedsFilter(beds)

	case domain.OpSetLongTerm, domain.OpSetShortTerm:
		enabled, err := strconv.ParseBool(strings.TrimSpace(cmd.Value))
		if err != nil {
			return domain.ViewModel{}, fmt.Errorf("%s %q: %w", cmd.Op, cmd.Value, domain.ErrInvalidFilter)
		}
		if cmd.Op == domain.OpSetLongTerm {
			return s.SetLongTerm(enabled)
		}
		return s.SetShortTerm(enabled)

	case domain.OpToggleAmenity:
		a, err := domain.ParseAmenity(cmd.Value)
		if err != nil {
			return domain.ViewModel{}, err
		}
		return s.ToggleAmenity(a)

	case domain.OpSetFreeTextType:
		return s.SetFreeTextType(cmd.Value)

	case domain.OpSetFreeTextLocation:
		return s.SetFreeTextLocation(cmd.Value)

	case domain.OpSetSort:
		key, err := domain.ParseSortKey(cmd.Value)
		if err != nil {
			return domain.ViewModel{}, err
		}
		return s.SetSortBy(key)

	case domain.OpSetPage:
		page, err := strconv.Atoi(strings.TrimSpace(cmd.Value))
		if err != nil {
			return domain.ViewModel{}, fmt.Errorf("page %q: %w", cmd.Value, domain.ErrInvalidFilter)
		}
		return s.SetPage(page)

	case domain.OpReset:
		return s.Reset()
	}

	return domain.ViewModel{}, fmt.Errorf("unknown op %q: %w", cmd.Op, domain.ErrInvalidSessionCommand)
}

func parseTypeFilter(s string) (domain.PropertyType, error) {
	if s == "" || strings.EqualFold(strings.TrimSpace(s), string(domain.TypeFilterAll)) {
		return domain.TypeFilterAll, nil
	}
	return domain.ParsePropertyType(s)
}
