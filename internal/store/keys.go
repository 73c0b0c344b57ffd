package store

import "github.com/weslymega/testefeirastudio-sub000/internal/models"

// CollectionKey names one independently persisted collection.
type CollectionKey string

const (
	KeyUser             CollectionKey = "user"
	KeyOwnedListings    CollectionKey = "listings:owned"
	KeyFavorites        CollectionKey = "favorites"
	KeyBannersDashboard CollectionKey = "banners:dashboard"
	KeyBannersVehicles  CollectionKey = "banners:vehicles"
	KeyBannersRealEst   CollectionKey = "banners:real_estate"
	KeyBannersParts     CollectionKey = "banners:parts"
	KeyNotifications    CollectionKey = "notifications"
	KeyReports          CollectionKey = "reports"
	KeyFairMode         CollectionKey = "flags:fair_mode"
	KeyMaintenance      CollectionKey = "flags:maintenance"
)

// AllKeys lists every persisted collection key.
var AllKeys = []CollectionKey{
	KeyUser, KeyOwnedListings, KeyFavorites,
	KeyBannersDashboard, KeyBannersVehicles, KeyBannersRealEst, KeyBannersParts,
	KeyNotifications, KeyReports, KeyFairMode, KeyMaintenance,
}

// BannerKey maps a placement channel to its collection key.
func BannerKey(channel models.BannerChannel) CollectionKey {
	switch channel {
	case models.ChannelDashboard:
		return KeyBannersDashboard
	case models.ChannelVehicles:
		return KeyBannersVehicles
	case models.ChannelRealEstate:
		return KeyBannersRealEst
	case models.ChannelParts:
		return KeyBannersParts
	}
	return ""
}
