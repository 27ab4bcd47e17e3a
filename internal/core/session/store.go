// Package session хранит состояние фильтров одной сессии просмотра.
// Каждое изменение пересчитывает выдачу через engine и уведомляет подписчиков.
package session

import (
	"fmt"
	"slices"
	"sync"

	"github.com/ayleenrq/urbane/internal/core/domain"
	"github.com/ayleenrq/urbane/internal/core/engine"
	"github.com/ayleenrq/urbane/internal/core/port"
)

// Observer получает новую выдачу после каждого изменения.
// Вызывается под блокировкой хранилища, обратно в Store обращаться нельзя.
type Observer func(state domain.FilterState, vm domain.ViewModel)

// Store - единственный владелец FilterState сессии. Изменения сериализуются, выигрывает последнее.
type Store struct {
	mu       sync.Mutex
	catalog  port.CatalogReaderPort
	defaults domain.FilterState
	state    domain.FilterState
	view     domain.ViewModel

	observers map[int]Observer
	nextObsID int
}

// NewStore создает хранилище с начальным состоянием initial и сразу считает выдачу.
// defaults используется для Reset.
func NewStore(catalog port.CatalogReaderPort, defaults, initial domain.FilterState) (*Store, error) {
	if catalog == nil {
		return nil, fmt.Errorf("session store: catalog cannot be nil")
	}
	state := initial.Clone()
	vm, err := engine.Compute(catalog.All(), state)
	if err != nil {
		return nil, err
	}
	state.CurrentPage = vm.CurrentPage

	return &Store{
		catalog:   catalog,
		defaults:  defaults.Clone(),
		state:     state,
		view:      vm,
		observers: make(map[int]Observer),
	}, nil
}

// State возвращает копию текущего состояния.
func (s *Store) State() domain.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// View возвращает последнюю посчитанную выдачу.
func (s *Store) View() domain.ViewModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Snapshot возвращает состояние и выдачу, посчитанную именно для него.
func (s *Store) Snapshot() (domain.FilterState, domain.ViewModel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone(), s.view
}

// Subscribe регистрирует наблюдателя. Возвращает функцию отписки.
func (s *Store) Subscribe(fn Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextObsID
	s.nextObsID++
	s.observers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// update применяет изменение к копии состояния. При ошибке движка состояние не меняется.
func (s *Store) update(mutate func(st *domain.FilterState), resetPage bool) (domain.ViewModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	mutate(&next)
	if resetPage {
		next.CurrentPage = 1
	}

	vm, err := engine.Compute(s.catalog.All(), next)
	if err != nil {
		return domain.ViewModel{}, err
	}
	// страница могла быть зажата в допустимый диапазон
	next.CurrentPage = vm.CurrentPage

	s.state = next
	s.view = vm
	s.notify()
	return vm, nil
}

func (s *Store) notify() {
	ids := make([]int, 0, len(s.observers))
	for id := range s.observers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		s.observers[id](s.state.Clone(), s.view)
	}
}

func (s *Store) SetTab(mode domain.ListingMode) (domain.ViewModel, error) {
	return s.update(func(st *domain.FilterState) { st.Tab = mode }, true)
}

func (s *Store) SetTypeFilter(t domain.PropertyType) (domain.ViewModel, error) {
	return s.update(func(st *domain.FilterState) { st.TypeFilter = t }, true)
}

func (s *Store) SetMaxPrice(price float64) (domain.ViewModel, error) {
	if price < 0 {
		return domain.ViewModel{}, fmt.Errorf("max price %v: %w", price, domain.ErrInvalidFilter)
	}
	return s.update(func(st *domain.FilterState) { st.MaxPrice = price }, true)
}

func (s *Store) SetBedsFilter(beds domain.BedsFilter) (domain.ViewModel, error) {
	return s.update(func(st *domain.FilterState) { st.BedsFilter = beds }, true)
}

func (s *Store) SetLongTerm(enabled bool) (domain.ViewModel, error) {
	return s.update(func(st *domain.FilterState) { st.LongTermEnabled = enabled }, true)
}

func (s *Store) SetShortTerm(enabled bool) (domain.ViewModel, error) {
	return s.update(func(st *domain.FilterState) { st.ShortTermEnabled = enabled }, true)
}

// ToggleAmenity добавляет удобство в выбранные или убирает, если оно уже выбрано.
func (s *Store) ToggleAmenity(a domain.Amenity) (domain.ViewModel, error) {
	return s.update(func(st *domain.FilterState) {
		if i := slices.Index(st.SelectedAmenities, a); i >= 0 {
			st.SelectedAmenities = slices.Delete(st.SelectedAmenities, i, i+1)
			return
		}
		st.SelectedAmenities = append(st.SelectedAmenities, a)
	}, true)
}

func (s *Store) SetFreeTextType(text string) (domain.ViewModel, error) {
	return s.update(func(st *domain.FilterState) { st.FreeTextType = text }, true)
}

func (s *Store) SetFreeTextLocation(text string) (domain.ViewModel, error) {
	return s.update(func(st *domain.FilterState) { st.FreeTextLocation = text }, true)
}

func (s *Store) SetSortBy(key domain.SortKey) (domain.ViewModel, error) {
	return s.update(func(st *domain.FilterState) { st.SortBy = key }, true)
}

// SetPage - единственное изменение, которое не сбрасывает страницу.
func (s *Store) SetPage(page int) (domain.ViewModel, error) {
	return s.update(func(st *domain.FilterState) { st.CurrentPage = page }, false)
}

// Reset возвращает все контролы к значениям по умолчанию.
func (s *Store) Reset() (domain.ViewModel, error) {
	return s.update(func(st *domain.FilterState) { *st = s.defaults.Clone() }, true)
}
