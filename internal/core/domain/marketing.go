package domain

// HeroSlide - слайд в шапке главной страницы.
type HeroSlide struct {
	Title     string
	Subtitle  string
	Image     string
	AgentName string
	AgentImg  string
}

type Testimonial struct {
	Text   string
	Name   string
	Role   string
	Avatar string
	Dark   bool
}

type FAQItem struct {
	Question string
	Answer   string
}

// StatCounter - счётчик в блоке отзывов ("1.2K+ clients" и т.п.).
type StatCounter struct {
	Label     string
	Target    float64
	Suffix    string
	Shorthand string
	Decimals  int
}

// MapMarker - объект на карте с заранее заданными координатами.
type MapMarker struct {
	ID       int
	Title    string
	Price    string
	Beds     int
	Featured bool
	Position Coordinates
	Geohash  string
}

// MapView - центр карты и маркеры.
type MapView struct {
	Center  Coordinates
	Zoom    int
	Markers []MapMarker
}

// MarketingContent - статичный контент главной страницы.
type MarketingContent struct {
	HeroSlides   []HeroSlide
	Testimonials []Testimonial
	FAQ          []FAQItem
	Stats        []StatCounter
	Map          MapView
}

// HomePage - всё, что нужно для отрисовки главной страницы.
type HomePage struct {
	HeroSlides   []HeroSlide
	Featured     []Property
	Testimonials []Testimonial
	FAQ          []FAQItem
	Stats        []StatCounter
	Map          MapView
}
