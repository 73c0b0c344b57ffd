package models

import "time"

// BannerChannel is one of the four placement slots a banner can occupy.
type BannerChannel string

const (
	ChannelDashboard  BannerChannel = "dashboard"
	ChannelVehicles   BannerChannel = "vehicles"
	ChannelRealEstate BannerChannel = "real_estate"
	ChannelParts      BannerChannel = "parts"
)

// BannerChannels lists every placement channel in display order.
var BannerChannels = []BannerChannel{ChannelDashboard, ChannelVehicles, ChannelRealEstate, ChannelParts}

// ValidBannerChannel reports whether c names a known placement channel.
func ValidBannerChannel(c BannerChannel) bool {
	for _, known := range BannerChannels {
		if c == known {
			return true
		}
	}
	return false
}

// Banner is a promotional record scoped to one placement channel.
type Banner struct {
	ID        string        `json:"id"`
	Channel   BannerChannel `json:"channel"`
	Title     string        `json:"title"`
	ImageURL  string        `json:"image_url"`
	LinkURL   string        `json:"link_url,omitempty"`
	Active    bool          `json:"active"`
	ExpiresAt time.Time     `json:"expires_at"`
	CreatedAt time.Time     `json:"created_at"`
}

// EligibleAt reports display eligibility: active and unexpired.
func (b Banner) EligibleAt(now time.Time) bool {
	return b.Active && b.ExpiresAt.After(now)
}
