package validate

import "fmt"

// Text field length limits — single source of truth for backend and frontend.
const (
	MaxCampaignTitleLength       = 200
	MaxCampaignDescriptionLength = 2000
	MaxThumbnailRefLength        = 500
	MaxAssetRefLength            = 500
	MaxLocationLength            = 200
	MaxBrandNameLength           = 100
	MaxCouponCodeLength          = 50
	MaxCTATextLength             = 100
)

func checkLen(value string, max int, field string) string {
	if len(value) > max {
		return fmt.Sprintf("%s must be %d characters or fewer", field, max)
	}
	return ""
}

func CampaignTitle(s string) string { return checkLen(s, MaxCampaignTitleLength, "title") }
func CampaignDescription(s string) string {
	return checkLen(s, MaxCampaignDescriptionLength, "description")
}
func ThumbnailRef(s string) string { return checkLen(s, MaxThumbnailRefLength, "thumbnail") }
func AssetRef(s string) string     { return checkLen(s, MaxAssetRefLength, "asset reference") }
func Location(s string) string     { return checkLen(s, MaxLocationLength, "location") }
func BrandName(s string) string    { return checkLen(s, MaxBrandNameLength, "brand name") }
func CouponCode(s string) string   { return checkLen(s, MaxCouponCodeLength, "coupon code") }
func CTAText(s string) string      { return checkLen(s, MaxCTATextLength, "call to action") }

// FieldLimits returns a map of field names to max lengths for the /api/limits endpoint.
func FieldLimits() map[string]int {
	return map[string]int{
		"title":       MaxCampaignTitleLength,
		"description": MaxCampaignDescriptionLength,
		"thumbnail":   MaxThumbnailRefLength,
		"assetRef":    MaxAssetRefLength,
		"location":    MaxLocationLength,
		"brandName":   MaxBrandNameLength,
		"couponCode":  MaxCouponCodeLength,
		"ctaText":     MaxCTATextLength,
	}
}
