package constants

// Обменники
const (
	ListingExchange     = "listing_exchange"
	ListingExchangeType = "direct"
)

// Ключи маршрутизации
const (
	RoutingKeyViewingRequested = "viewing.requested"
)
