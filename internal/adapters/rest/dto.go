package rest

import (
	"time"

	"github.com/ayleenrq/urbane/internal/core/domain"
)

type CoordinatesResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PropertyResponse - карточка объекта и данные страницы объекта.
type PropertyResponse struct {
	ID           int                  `json:"id"`
	Title        string               `json:"title"`
	Description  string               `json:"description,omitempty"`
	Location     string               `json:"location"`
	Type         string               `json:"type"`
	Tab          []string             `json:"tab"`
	RentalPeriod []string             `json:"rental_period"`
	PriceNumeric float64              `json:"price_numeric"`
	PriceRange   string               `json:"price_range,omitempty"`
	Price        string               `json:"price,omitempty"`
	Period       string               `json:"period,omitempty"`
	Area         string               `json:"area,omitempty"`
	Amenities    []string             `json:"amenities"`
	Beds         int                  `json:"beds"`
	Baths        int                  `json:"baths"`
	Featured     bool                 `json:"featured"`
	Images       []string             `json:"images"`
	AgentName    string               `json:"agent_name,omitempty"`
	AgentImg     string               `json:"agent_img,omitempty"`
	Features     []string             `json:"features"`
	Coordinates  *CoordinatesResponse `json:"coordinates,omitempty"`
}

type ViewModelResponse struct {
	Items        []PropertyResponse `json:"items"`
	TotalMatches int                `json:"total_matches"`
	TotalPages   int                `json:"total_pages"`
	CurrentPage  int                `json:"current_page"`
	Empty        bool               `json:"empty"`
}

type FilterStateResponse struct {
	Tab               string   `json:"tab"`
	TypeFilter        string   `json:"type_filter"`
	MaxPrice          float64  `json:"max_price"`
	BedsFilter        string   `json:"beds_filter"`
	LongTermEnabled   bool     `json:"long_term_enabled"`
	ShortTermEnabled  bool     `json:"short_term_enabled"`
	SelectedAmenities []string `json:"selected_amenities"`
	FreeTextType      string   `json:"free_text_type"`
	FreeTextLocation  string   `json:"free_text_location"`
	SortBy            string   `json:"sort_by"`
	PageSize          int      `json:"page_size"`
	CurrentPage       int      `json:"current_page"`
}

// BrowseResponse - ответ страницы выдачи: примененное состояние фильтров и результат.
type BrowseResponse struct {
	Filters FilterStateResponse `json:"filters"`
	Results ViewModelResponse   `json:"results"`
}

type PropertyDetailsResponse struct {
	Property PropertyResponse   `json:"property"`
	Related  []PropertyResponse `json:"related"`
}

type FilterOptionsResponse struct {
	Tabs         []string       `json:"tabs"`
	Types        []string       `json:"types"`
	Amenities    []string       `json:"amenities"`
	Beds         []string       `json:"beds"`
	SortKeys     []string       `json:"sort_keys"`
	PriceMin     float64        `json:"price_min"`
	PriceMax     float64        `json:"price_max"`
	CountsByType map[string]int `json:"counts_by_type"`
	Total        int            `json:"total"`
}

type HeroSlideResponse struct {
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Image     string `json:"image"`
	AgentName string `json:"agent_name"`
	AgentImg  string `json:"agent_img"`
}

type TestimonialResponse struct {
	Text   string `json:"text"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
	Dark   bool   `json:"dark"`
}

type FAQItemResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type StatCounterResponse struct {
	Label     string  `json:"label"`
	Target    float64 `json:"target"`
	Suffix    string  `json:"suffix"`
	Shorthand string  `json:"shorthand,omitempty"`
	Decimals  int     `json:"decimals"`
}

type MapMarkerResponse struct {
	ID       int                 `json:"id"`
	Title    string              `json:"title"`
	Price    string              `json:"price"`
	Beds     int                 `json:"beds"`
	Featured bool                `json:"featured"`
	Position CoordinatesResponse `json:"position"`
	Geohash  string              `json:"geohash"`
}

type MapViewResponse struct {
	Center  CoordinatesResponse `json:"center"`
	Zoom    int                 `json:"zoom"`
	Markers []MapMarkerResponse `json:"markers"`
}

type HomePageResponse struct {
	HeroSlides   []HeroSlideResponse   `json:"hero_slides"`
	Featured     []PropertyResponse    `json:"featured"`
	Testimonials []TestimonialResponse `json:"testimonials"`
	FAQ          []FAQItemResponse     `json:"faq"`
	Stats        []StatCounterResponse `json:"stats"`
	Map          MapViewResponse       `json:"map"`
}

type ViewingRequestBody struct {
	PropertyID int    `json:"property_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Message    string `json:"message"`
	Source     string `json:"source"`
}

type ViewingRequestResponse struct {
	ID         string    `json:"id"`
	PropertyID int       `json:"property_id,omitempty"`
	Source     string    `json:"source"`
	CreatedAt  time.Time `json:"created_at"`
}

type SessionCommandBody struct {
	Op    string `json:"op"`
	Value string `json:"value"`
}

type SessionCommandsBody struct {
	Commands []SessionCommandBody `json:"commands"`
}

type SessionResponse struct {
	ID       string              `json:"id"`
	Filters  FilterStateResponse `json:"filters"`
	Results  ViewModelResponse   `json:"results"`
	LastSeen time.Time           `json:"last_seen"`
}

// --- маппинг domain -> DTO ---

func toStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func toPropertyResponse(p domain.Property) PropertyResponse {
	resp := PropertyResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Location:     p.Location,
		Type:         string(p.Type),
		Tab:          toStrings(p.Tab),
		RentalPeriod: toStrings(p.RentalPeriod),
		PriceNumeric: p.PriceNumeric,
		PriceRange:   p.Presentation.PriceRange,
		Price:        p.Presentation.Price,
		Period:       p.Presentation.Period,
		Area:         p.Presentation.Area,
		Amenities:    toStrings(p.Amenities),
		Beds:         p.Beds,
		Baths:        p.Baths,
		Featured:     p.Featured,
		Images:       nonNil(p.Presentation.Images),
		AgentName:    p.Presentation.AgentName,
		AgentImg:     p.Presentation.AgentImg,
		Features:     nonNil(p.Presentation.Features),
	}
	if c := p.Presentation.Coordinates; c != nil {
		resp.Coordinates = &CoordinatesResponse{Lat: c.Lat, Lng: c.Lng}
	}
	return resp
}

func toPropertyResponses(props []domain.Property) []PropertyResponse {
	out := make([]PropertyResponse, len(props))
	for i, p := range props {
		out[i] = toPropertyResponse(p)
	}
	return out
}

func toViewModelResponse(vm domain.ViewModel) ViewModelResponse {
	return ViewModelResponse{
		Items:        toPropertyResponses(vm.Items),
		TotalMatches: vm.TotalMatches,
		TotalPages:   vm.TotalPages,
		CurrentPage:  vm.CurrentPage,
		Empty:        vm.IsEmpty(),
	}
}

func toFilterStateResponse(s domain.FilterState) FilterStateResponse {
	return FilterStateResponse{
		Tab:               string(s.Tab),
		TypeFilter:        string(s.TypeFilter),
		MaxPrice:          s.MaxPrice,
		BedsFilter:        string(s.BedsFilter),
		LongTermEnabled:   s.LongTermEnabled,
		ShortTermEnabled:  s.ShortTermEnabled,
		SelectedAmenities: toStrings(s.SelectedAmenities),
		FreeTextType:      s.FreeTextType,
		FreeTextLocation:  s.FreeTextLocation,
		SortBy:            string(s.SortBy),
		PageSize:          s.PageSize,
		CurrentPage:       s.CurrentPage,
	}
}

func toFilterOptionsResponse(o domain.FilterOptionsResult) FilterOptionsResponse {
	counts := make(map[string]int, len(o.CountsByType))
	for t, n := range o.CountsByType {
		counts[string(t)] = n
	}
	return FilterOptionsResponse{
		Tabs:         toStrings(o.Tabs),
		Types:        toStrings(o.Types),
		Amenities:    toStrings(o.Amenities),
		Beds:         toStrings(o.Beds),
		SortKeys:     toStrings(o.SortKeys),
		PriceMin:     o.PriceMin,
		PriceMax:     o.PriceMax,
		CountsByType: counts,
		Total:        o.Total,
	}
}

func toMapViewResponse(m domain.MapView) MapViewResponse {
	markers := make([]MapMarkerResponse, len(m.Markers))
	for i, mk := range m.Markers {
		markers[i] = MapMarkerResponse{
			ID:       mk.ID,
			Title:    mk.Title,
			Price:    mk.Price,
			Beds:     mk.Beds,
			Featured: mk.Featured,
			Position: CoordinatesResponse{Lat: mk.Position.Lat, Lng: mk.Position.Lng},
			Geohash:  mk.Geohash,
		}
	}
	return MapViewResponse{
		Center:  CoordinatesResponse{Lat: m.Center.Lat, Lng: m.Center.Lng},
		Zoom:    m.Zoom,
		Markers: markers,
	}
}

func toHomePageResponse(h domain.HomePage) HomePageResponse {
	resp := HomePageResponse{
		HeroSlides:   make([]HeroSlideResponse, len(h.HeroSlides)),
		Featured:     toPropertyResponses(h.Featured),
		Testimonials: make([]TestimonialResponse, len(h.Testimonials)),
		FAQ:          make([]FAQItemResponse, len(h.FAQ)),
		Stats:        make([]StatCounterResponse, len(h.Stats)),
		Map:          toMapViewResponse(h.Map),
	}
	for i, s := range h.HeroSlides {
		resp.HeroSlides[i] = HeroSlideResponse(s)
	}
	for i, t := range h.Testimonials {
		resp.Testimonials[i] = TestimonialResponse(t)
	}
	for i, f := range h.FAQ {
		resp.FAQ[i] = FAQItemResponse(f)
	}
	for i, s := range h.Stats {
		resp.Stats[i] = StatCounterResponse(s)
	}
	return resp
}

func toSessionResponse(s domain.SessionSnapshot) SessionResponse {
	return SessionResponse{
		ID:       s.ID.String(),
		Filters:  toFilterStateResponse(s.State),
		Results:  toViewModelResponse(s.View),
		LastSeen: s.LastSeen,
	}
}
