// Package campaign maps an interest category to the coupon campaign it is issued from
// and the voucher artwork shown to the user.
package campaign

import "lead-voucher-backend/internal/features/lead/models"

const (
	// DefaultCampaignID is used for any category without its own campaign.
	DefaultCampaignID = "CMP-GEN-01"
	// DefaultAsset is the generic gift voucher artwork.
	DefaultAsset = "/giftvoucher.png"
)

type entry struct {
	interest   models.Interest
	campaignID string
	asset      string
}

// Ordered as presented in the form.
var table = [...]entry{
	{models.InterestLaptops, "CMP-LAP-01", "/vouchers/laptops.png"},
	{models.InterestDesktops, "CMP-DSK-01", "/vouchers/desktops.png"},
	{models.InterestPrinters, "CMP-PRN-01", "/vouchers/printers.png"},
	{models.InterestMonitors, "CMP-MON-01", "/vouchers/monitors.png"},
	{models.InterestAccessories, "CMP-ACC-01", "/vouchers/accessories.png"},
	{models.InterestGaming, "CMP-GAM-01", "/vouchers/gaming.png"},
}

func lookup(interest models.Interest) (entry, bool) {
	for _, e := range table {
		if e.interest == interest {
			return e, true
		}
	}
	return entry{}, false
}

// ResolveCampaign returns the campaign for interest, or DefaultCampaignID.
func ResolveCampaign(interest models.Interest) string {
	if e, ok := lookup(interest); ok {
		return e.campaignID
	}
	return DefaultCampaignID
}

// ResolveAsset returns the voucher artwork for interest, or DefaultAsset.
func ResolveAsset(interest models.Interest) string {
	if e, ok := lookup(interest); ok {
		return e.asset
	}
	return DefaultAsset
}

// Interests lists every known category with its campaign and asset.
func Interests() []models.InterestOption {
	out := make([]models.InterestOption, 0, len(table))
	for _, e := range table {
		out = append(out, models.InterestOption{
			Interest:   e.interest,
			CampaignID: e.campaignID,
			Asset:      e.asset,
		})
	}
	return out
}

// Known reports whether interest has its own campaign.
func Known(interest models.Interest) bool {
	_, ok := lookup(interest)
	return ok
}
