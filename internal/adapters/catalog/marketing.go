package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/ayleenrq/urbane/internal/contracts"
	"github.com/ayleenrq/urbane/internal/core/domain"

	"github.com/mmcloughlin/geohash"
)

//go:embed data/marketing.json
var embeddedMarketing []byte

// Точность geohash для подписи маркера (~150x150 м)
const markerGeohashPrecision = 7

type marketingDocument struct {
	HeroSlides []struct {
		Title     string `json:"title"`
		Subtitle  string `json:"subtitle"`
		Image     string `json:"image"`
		AgentName string `json:"agentName"`
		AgentImg  string `json:"agentImg"`
	} `json:"heroSlides"`
	Testimonials []struct {
		Text   string `json:"text"`
		Name   string `json:"name"`
		Role   string `json:"role"`
		Avatar string `json:"avatar"`
		Dark   bool   `json:"dark"`
	} `json:"testimonials"`
	FAQ []struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	} `json:"faq"`
	Stats []struct {
		Label     string  `json:"label"`
		Target    float64 `json:"target"`
		Suffix    string  `json:"suffix"`
		Shorthand string  `json:"shorthand"`
		Decimals  int     `json:"decimals"`
	} `json:"stats"`
	Map struct {
		Center struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"center"`
		Zoom    int `json:"zoom"`
		Markers []struct {
			ID       int     `json:"id"`
			Lat      float64 `json:"lat"`
			Lng      float64 `json:"lng"`
			Price    string  `json:"price"`
			Title    string  `json:"title"`
			Beds     int     `json:"beds"`
			Featured bool    `json:"featured"`
		} `json:"markers"`
	} `json:"map"`
}

// MarketingSource отдаёт статичный контент главной страницы.
// Документ разбирается один раз в конструкторе.
type MarketingSource struct {
	content *domain.MarketingContent
}

func NewEmbeddedMarketingSource() (*MarketingSource, error) {
	return NewMarketingSource(embeddedMarketing)
}

func NewMarketingSource(body []byte) (*MarketingSource, error) {
	if err := contracts.Validate(contracts.MarketingV1, body); err != nil {
		return nil, fmt.Errorf("marketing content: %w", err)
	}

	var doc marketingDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("marketing content: decode: %w", err)
	}

	content := &domain.MarketingContent{
		HeroSlides:   make([]domain.HeroSlide, 0, len(doc.HeroSlides)),
		Testimonials: make([]domain.Testimonial, 0, len(doc.Testimonials)),
		FAQ:          make([]domain.FAQItem, 0, len(doc.FAQ)),
		Stats:        make([]domain.StatCounter, 0, len(doc.Stats)),
		Map: domain.MapView{
			Center:  domain.Coordinates{Lat: doc.Map.Center.Lat, Lng: doc.Map.Center.Lng},
			Zoom:    doc.Map.Zoom,
			Markers: make([]domain.MapMarker, 0, len(doc.Map.Markers)),
		},
	}

	for _, s := range doc.HeroSlides {
		content.HeroSlides = append(content.HeroSlides, domain.HeroSlide{
			Title: s.Title, Subtitle: s.Subtitle, Image: s.Image,
			AgentName: s.AgentName, AgentImg: s.AgentImg,
		})
	}
	for _, t := range doc.Testimonials {
		content.Testimonials = append(content.Testimonials, domain.Testimonial{
			Text: t.Text, Name: t.Name, Role: t.Role, Avatar: t.Avatar, Dark: t.Dark,
		})
	}
	for _, f := range doc.FAQ {
		content.FAQ = append(content.FAQ, domain.FAQItem{Question: f.Question, Answer: f.Answer})
	}
	for _, s := range doc.Stats {
		content.Stats = append(content.Stats, domain.StatCounter{
			Label: s.Label, Target: s.Target, Suffix: s.Suffix,
			Shorthand: s.Shorthand, Decimals: s.Decimals,
		})
	}
	for _, m := range doc.Map.Markers {
		content.Map.Markers = append(content.Map.Markers, domain.MapMarker{
			ID:       m.ID,
			Title:    m.Title,
			Price:    m.Price,
			Beds:     m.Beds,
			Featured: m.Featured,
			Position: domain.Coordinates{Lat: m.Lat, Lng: m.Lng},
			Geohash:  geohash.EncodeWithPrecision(m.Lat, m.Lng, markerGeohashPrecision),
		})
	}

	return &MarketingSource{content: content}, nil
}

func (s *MarketingSource) MarketingContent(ctx context.Context) (*domain.MarketingContent, error) {
	return s.content, nil
}
