package rest

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/ayleenrq/urbane/internal/core/domain"

	"github.com/gorilla/schema"
)

// browseQuery - параметры страницы выдачи в URL. Совпадают со ссылками с главной страницы
// (tab, type, price, rooms, lookingFor, location) плюс остальные контролы фильтра.
type browseQuery struct {
	Tab        string   `schema:"tab"`
	Type       string   `schema:"type"`
	Price      *float64 `schema:"price"`
	Rooms      string   `schema:"rooms"`
	LookingFor string   `schema:"lookingFor"`
	Location   string   `schema:"location"`
	LongTerm   *bool    `schema:"longTerm"`
	ShortTerm  *bool    `schema:"shortTerm"`
	Amenities  []string `schema:"amenities"`
	Sort       string   `schema:"sort"`
	Page       *int     `schema:"page"`
}

var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// SeedFilterState накладывает параметры запроса на состояние по умолчанию.
// Отсутствующий параметр оставляет значение по умолчанию, некорректный дает ErrInvalidFilter.
func SeedFilterState(query url.Values, defaults domain.FilterState) (domain.FilterState, error) {
	var q browseQuery
	if err := queryDecoder.Decode(&q, query); err != nil {
		return domain.FilterState{}, fmt.Errorf("query: %v: %w", err, domain.ErrInvalidFilter)
	}

	state := defaults.Clone()

	if q.Tab != "" {
		mode, err := domain.ParseListingMode(q.Tab)
		if err != nil {
			return domain.FilterState{}, err
		}
		state.Tab = mode
	}

	if q.Type != "" && !strings.EqualFold(q.Type, string(domain.TypeFilterAll)) {
		t, err := domain.ParsePropertyType(q.Type)
		if err != nil {
			return domain.FilterState{}, err
		}
		state.TypeFilter = t
	}

	if q.Price != nil {
		if *q.Price < 0 {
			return domain.FilterState{}, fmt.Errorf("price %v: %w", *q.Price, domain.ErrInvalidFilter)
		}
		state.MaxPrice = *q.Price
	}

	if q.Rooms != "" {
		beds, err := domain.ParseBedsFilter(q.Rooms)
		if err != nil {
			return domain.FilterState{}, err
		}
		state.BedsFilter = beds
	}

	state.FreeTextType = strings.TrimSpace(q.LookingFor)
	state.FreeTextLocation = strings.TrimSpace(q.Location)

	if q.LongTerm != nil {
		state.LongTermEnabled = *q.LongTerm
	}
	if q.ShortTerm != nil {
		state.ShortTermEnabled = *q.ShortTerm
	}

	// amenities=Pool&amenities=Gym и amenities=Pool,Gym равнозначны
	for _, raw := range q.Amenities {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name == "" {
				continue
			}
			a, err := domain.ParseAmenity(name)
			if err != nil {
				return domain.FilterState{}, err
			}
			if !slices.Contains(state.SelectedAmenities, a) {
				state.SelectedAmenities = append(state.SelectedAmenities, a)
			}
		}
	}

	if q.Sort != "" {
		key, err := domain.ParseSortKey(q.Sort)
		if err != nil {
			return domain.FilterState{}, err
		}
		state.SortBy = key
	}

	if q.Page != nil {
		state.CurrentPage = *q.Page
	}

	return state, nil
}
