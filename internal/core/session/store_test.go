package session

import (
	"sync"
	"testing"

	"github.com/ayleenrq/urbane/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceCatalog []domain.Property

func (c sliceCatalog) All() []domain.Property { return c }

func (c sliceCatalog) ByID(id int) (domain.Property, bool) {
	for _, p := range c {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Property{}, false
}

func listing(id int, t domain.PropertyType, price float64, amenities ...domain.Amenity) domain.Property {
	if amenities == nil {
		amenities = []domain.Amenity{}
	}
	return domain.Property{
		ID:           id,
		Title:        "Listing",
		Location:     "Jakarta",
		Type:         t,
		Tab:          []domain.ListingMode{domain.ListingModeRent},
		RentalPeriod: []domain.RentalPeriod{domain.RentalPeriodLongTerm},
		PriceNumeric: price,
		Amenities:    amenities,
		Beds:         3,
	}
}

func testCatalog() sliceCatalog {
	return sliceCatalog{
		listing(1, domain.PropertyTypeVilla, 900, domain.AmenityPool),
		listing(2, domain.PropertyTypeHouse, 400),
		listing(3, domain.PropertyTypeVilla, 300, domain.AmenityPool, domain.AmenityGym),
		listing(4, domain.PropertyTypeApartment, 200),
		listing(5, domain.PropertyTypeHouse, 1200),
	}
}

func defaults(pageSize int) domain.FilterState {
	return domain.DefaultFilterState(pageSize, domain.DefaultMaxPrice)
}

func newTestStore(t *testing.T, pageSize int) *Store {
	t.Helper()
	s, err := NewStore(testCatalog(), defaults(pageSize), defaults(pageSize))
	require.NoError(t, err)
	return s
}

func TestNewStoreComputesInitialView(t *testing.T) {
	s := newTestStore(t, 2)
	vm := s.View()
	assert.Equal(t, 5, vm.TotalMatches)
	assert.Equal(t, 3, vm.TotalPages)
	assert.Len(t, vm.Items, 2)
}

func TestNewStoreClampsInitialPage(t *testing.T) {
	initial := defaults(2)
	initial.CurrentPage = 99

	s, err := NewStore(testCatalog(), defaults(2), initial)
	require.NoError(t, err)

	state, vm := s.Snapshot()
	assert.Equal(t, 3, vm.CurrentPage)
	assert.Equal(t, vm.CurrentPage, state.CurrentPage)
	assert.Equal(t, 99, initial.CurrentPage, "caller's state is not modified")
}

func TestNewStoreRejectsInvalidState(t *testing.T) {
	_, err := NewStore(testCatalog(), defaults(8), defaults(0))
	assert.ErrorIs(t, err, domain.ErrInvalidPageSize)

	_, err = NewStore(nil, defaults(8), defaults(8))
	assert.Error(t, err)
}

func TestFilterChangesResetPage(t *testing.T) {
	s := newTestStore(t, 2)

	vm, err := s.SetPage(3)
	require.NoError(t, err)
	assert.Equal(t, 3, vm.CurrentPage)

	vm, err = s.SetTypeFilter(domain.PropertyTypeVilla)
	require.NoError(t, err)
	assert.Equal(t, 1, vm.CurrentPage)
	assert.Equal(t, 2, vm.TotalMatches)
	assert.Equal(t, 1, s.State().CurrentPage)

	_, err = s.SetPage(2)
	require.NoError(t, err)
	vm, err = s.SetSortBy(domain.SortPriceAsc)
	require.NoError(t, err)
	assert.Equal(t, 1, vm.CurrentPage)
	assert.Equal(t, 300.0, vm.Items[0].PriceNumeric)
}

func TestSetPageClampsAndKeepsFilters(t *testing.T) {
	s := newTestStore(t, 2)
	_, err := s.SetMaxPrice(1000)
	require.NoError(t, err)

	vm, err := s.SetPage(99)
	require.NoError(t, err)
	assert.Equal(t, 2, vm.CurrentPage)
	assert.Equal(t, 2, s.State().CurrentPage)
	assert.Equal(t, 1000.0, s.State().MaxPrice)
}

func TestToggleAmenity(t *testing.T) {
	s := newTestStore(t, 8)

	vm, err := s.ToggleAmenity(domain.AmenityPool)
	require.NoError(t, err)
	assert.Equal(t, 2, vm.TotalMatches)

	vm, err = s.ToggleAmenity(domain.AmenityGym)
	require.NoError(t, err)
	assert.Equal(t, 1, vm.TotalMatches)
	assert.Equal(t, 3, vm.Items[0].ID)

	vm, err = s.ToggleAmenity(domain.AmenityPool)
	require.NoError(t, err)
	assert.Equal(t, []domain.Amenity{domain.AmenityGym}, s.State().SelectedAmenities)
	assert.Equal(t, 1, vm.TotalMatches)
}

func TestResetRestoresDefaults(t *testing.T) {
	s := newTestStore(t, 8)
	_, _ = s.SetTab(domain.ListingModeBuy)
	_, _ = s.SetFreeTextLocation("bali")
	_, _ = s.SetShortTerm(true)

	vm, err := s.Reset()
	require.NoError(t, err)
	assert.Equal(t, defaults(8), s.State())
	assert.Equal(t, 5, vm.TotalMatches)
}

func TestInvalidChangeKeepsState(t *testing.T) {
	s := newTestStore(t, 8)
	before := s.State()

	_, err := s.SetSortBy("newest")
	assert.ErrorIs(t, err, domain.ErrInvalidSortKey)
	_, err = s.SetMaxPrice(-1)
	assert.ErrorIs(t, err, domain.ErrInvalidFilter)

	assert.Equal(t, before, s.State())
}

func TestObserversAreNotified(t *testing.T) {
	s := newTestStore(t, 8)

	var got []int
	unsubscribe := s.Subscribe(func(_ domain.FilterState, vm domain.ViewModel) {
		got = append(got, vm.TotalMatches)
	})

	_, _ = s.SetMaxPrice(500)
	_, _ = s.SetTypeFilter(domain.PropertyTypeVilla)
	unsubscribe()
	_, _ = s.Reset()

	assert.Equal(t, []int{3, 1}, got)
}

func TestConcurrentMutationsAreSerialized(t *testing.T) {
	s := newTestStore(t, 1)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, _ = s.SetPage(i%5 + 1)
			} else {
				_, _ = s.SetFreeTextType("")
			}
		}(i)
	}
	wg.Wait()

	state, vm := s.State(), s.View()
	assert.Equal(t, state.CurrentPage, vm.CurrentPage)
	assert.Equal(t, 5, vm.TotalMatches)
}

func TestSnapshotPairsStateWithItsView(t *testing.T) {
	s := newTestStore(t, 8)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, _ = s.SetTypeFilter(domain.PropertyTypeVilla)
			} else {
				_, _ = s.SetTypeFilter(domain.TypeFilterAll)
			}
		}(i)
	}

	for i := 0; i < 20; i++ {
		state, vm := s.Snapshot()
		want := 5
		if state.TypeFilter == domain.PropertyTypeVilla {
			want = 2
		}
		assert.Equal(t, want, vm.TotalMatches)
	}
	wg.Wait()
}

func TestApplyCommands(t *testing.T) {
	s := newTestStore(t, 8)

	steps := []domain.SessionCommand{
		{Op: domain.OpSetType, Value: "villa"},
		{Op: domain.OpSetMaxPrice, Value: "500"},
		{Op: domain.OpSetBeds, Value: "3"},
		{Op: domain.OpSetLongTerm, Value: "true"},
	}
	var vm domain.ViewModel
	var err error
	for _, cmd := range steps {
		vm, err = Apply(s, cmd)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, vm.TotalMatches)
	assert.Equal(t, 3, vm.Items[0].ID)

	vm, err = Apply(s, domain.SessionCommand{Op: domain.OpSetType, Value: "all"})
	require.NoError(t, err)
	assert.Equal(t, 3, vm.TotalMatches)
}

func TestApplyRejectsBadCommands(t *testing.T) {
	s := newTestStore(t, 8)

	cases := []struct {
		cmd  domain.SessionCommand
		want error
	}{
		{domain.SessionCommand{Op: "teleport"}, domain.ErrInvalidSessionCommand},
		{domain.SessionCommand{Op: domain.OpSetMaxPrice, Value: "cheap"}, domain.ErrInvalidFilter},
		{domain.SessionCommand{Op: domain.OpSetTab, Value: "Lease"}, domain.ErrInvalidFilter},
		{domain.SessionCommand{Op: domain.OpSetShortTerm, Value: "sometimes"}, domain.ErrInvalidFilter},
		{domain.SessionCommand{Op: domain.OpToggleAmenity, Value: "Sauna"}, domain.ErrInvalidFilter},
		{domain.SessionCommand{Op: domain.OpSetSort, Value: "newest"}, domain.ErrInvalidSortKey},
		{domain.SessionCommand{Op: domain.OpSetPage, Value: "two"}, domain.ErrInvalidFilter},
	}
	for _, tc := range cases {
		_, err := Apply(s, tc.cmd)
		assert.ErrorIs(t, err, tc.want, "op %s", tc.cmd.Op)
	}
}
