package domain

import (
	"fmt"
	"time"
)

// CampaignType selects which ad variants a campaign accepts.
type CampaignType int

const (
	CampaignNative CampaignType = iota + 1
	CampaignDisplay
)

// Variant tags follow the original naming scheme: lowercase ad kind plus "s".
const (
	AdTypeNative  = "nativeads"
	AdTypeDisplay = "displayads"
)

type campaignTypeInfo struct {
	Name             string
	AvailableAdTypes []string
}

// campaignTypes maps each campaign type to its name and the ad variant tags
// it accepts. This table is the single source of truth for variant checks.
var campaignTypes = map[CampaignType]campaignTypeInfo{
	CampaignNative:  {Name: "Native", AvailableAdTypes: []string{AdTypeNative}},
	CampaignDisplay: {Name: "Display", AvailableAdTypes: []string{AdTypeDisplay}},
}

// AllAdTypes lists every variant tag known to any campaign type.
func AllAdTypes() []string {
	var all []string
	for _, info := range campaignTypes {
		for _, at := range info.AvailableAdTypes {
			seen := false
			for _, have := range all {
				if have == at {
					seen = true
					break
				}
			}
			if !seen {
				all = append(all, at)
			}
		}
	}
	return all
}

// Valid reports whether t is a declared campaign type.
func (t CampaignType) Valid() bool {
	_, ok := campaignTypes[t]
	return ok
}

func (t CampaignType) String() string {
	if info, ok := campaignTypes[t]; ok {
		return info.Name
	}
	return "Unknown"
}

// AllowsAdType reports whether ads tagged adType may belong to a campaign of
// this type.
func (t CampaignType) AllowsAdType(adType string) bool {
	info, ok := campaignTypes[t]
	if !ok {
		return false
	}
	for _, at := range info.AvailableAdTypes {
		if at == adType {
			return true
		}
	}
	return false
}

// ValidateAdType rejects ad variants the campaign type does not accept. It is
// enforced on every persist of an ad, not only at creation.
func (t CampaignType) ValidateAdType(adType string) error {
	if !t.AllowsAdType(adType) {
		return fmt.Errorf("cannot add %s for a %s campaign type", adType, t)
	}
	return nil
}

// BidType selects how a campaign is billed.
type BidType int

const (
	BidCPM BidType = iota + 1
	BidCPC
)

var bidTypeNames = map[BidType]string{
	BidCPM: "CPM",
	BidCPC: "CPC",
}

// Valid reports whether b is a declared bid type.
func (b BidType) Valid() bool {
	_, ok := bidTypeNames[b]
	return ok
}

func (b BidType) String() string {
	if name, ok := bidTypeNames[b]; ok {
		return name
	}
	return "Unknown"
}

// Campaign stores all campaign configuration attributes. Monetary amounts
// (caps and bids) are stored in integer micro-units. A cap of 0 means
// unlimited.
type Campaign struct {
	ID           int64
	AdvertiserID int64
	Name         string
	CampaignType CampaignType
	Status       Status

	// Spend ceilings, 0 = unlimited.
	DailyCap   int64
	MonthlyCap int64
	TotalCap   int64

	StartDate *time.Time
	EndDate   *time.Time

	BidType BidType
	// Bid is the default used when an ad does not set its own.
	Bid int64
	// MinBid is the floor for per-ad bid overrides.
	MinBid int64

	// DailyFrequencyCap limits how many times an ad is shown per day per
	// user, 0 = unlimited. MinutesFrequency spaces impressions per user.
	DailyFrequencyCap int
	MinutesFrequency  int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SetStatus is the single place campaign status transitions happen, so that
// per-status checks can be added without touching callers.
func (c *Campaign) SetStatus(next Status) error {
	if !next.Valid() {
		return fmt.Errorf("unknown campaign status %d", next)
	}
	c.Status = next
	return nil
}
