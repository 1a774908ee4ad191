package domain

import (
	"fmt"
	"strconv"
	"time"
)

// NativeAd is the native variant of an ad. It belongs to exactly one
// campaign, and that campaign's type must list AdTypeNative among its
// accepted variants at every persist, not only at creation.
type NativeAd struct {
	ID         int64
	CampaignID int64
	Name       string
	Title      string
	URL        string
	Status     Status

	DataAssets  []NativeAdDataAsset
	ImageAssets []NativeAdImageAsset

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AdType returns the variant tag used in the campaign-type table.
func (NativeAd) AdType() string { return AdTypeNative }

// DataAssetKind is the primitive kind a data asset value must coerce to.
// Values are always stored as text; the kind check exists because OpenRTB
// requires the value to be representable in the declared type.
type DataAssetKind int

const (
	KindString DataAssetKind = iota + 1
	KindInt
	KindFloat
)

func (k DataAssetKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	}
	return "unknown"
}

// Data asset type ids as defined by the OpenRTB Native data asset table.
const (
	DataSponsored    = 1
	DataDescription  = 2
	DataRating       = 3
	DataLikes        = 4
	DataDownloads    = 5
	DataPrice        = 6
	DataSalePrice    = 7
	DataPhone        = 8
	DataAddress      = 9
	DataDescription2 = 10
	DataDisplayURL   = 11
	DataCTAText      = 12
)

type dataAssetInfo struct {
	Name string
	Kind DataAssetKind
}

// dataAssetTypes maps OpenRTB data asset ids to a readable name and the
// primitive kind the stored value must be coercible to.
var dataAssetTypes = map[int]dataAssetInfo{
	DataSponsored:    {Name: "Sponsored", Kind: KindString},
	DataDescription:  {Name: "Description", Kind: KindString},
	DataRating:       {Name: "Rating", Kind: KindInt},
	DataLikes:        {Name: "Likes", Kind: KindInt},
	DataDownloads:    {Name: "Downloads", Kind: KindInt},
	DataPrice:        {Name: "Price", Kind: KindFloat},
	DataSalePrice:    {Name: "SalePrice", Kind: KindFloat},
	DataPhone:        {Name: "Phone", Kind: KindString},
	DataAddress:      {Name: "Address", Kind: KindString},
	DataDescription2: {Name: "Description2", Kind: KindString},
	DataDisplayURL:   {Name: "DisplayURL", Kind: KindString},
	DataCTAText:      {Name: "CTAText", Kind: KindString},
}

// NativeAdDataAsset stores one data asset of a native ad. The value is kept
// textual but must coerce to the kind declared for its asset type.
type NativeAdDataAsset struct {
	ID        int64
	AdID      int64
	AssetType int
	Value     string
}

// Validate rejects unknown asset types and values that do not coerce to the
// declared primitive kind.
func (a NativeAdDataAsset) Validate() error {
	info, ok := dataAssetTypes[a.AssetType]
	if !ok {
		return fmt.Errorf("unknown data asset type %d", a.AssetType)
	}
	var err error
	switch info.Kind {
	case KindInt:
		_, err = strconv.Atoi(a.Value)
	case KindFloat:
		_, err = strconv.ParseFloat(a.Value, 64)
	}
	if err != nil {
		return fmt.Errorf("invalid value type for data type %d (%s): should be %s",
			a.AssetType, info.Name, info.Kind)
	}
	return nil
}

// Image asset type ids as defined by the OpenRTB Native image asset table.
const (
	ImageIcon = 1
	ImageLogo = 2
	ImageMain = 3
)

var imageAssetTypes = map[int]string{
	ImageIcon: "Icon",
	ImageLogo: "Logo",
	ImageMain: "Main",
}

// NativeAdImageAsset stores one image asset of a native ad.
type NativeAdImageAsset struct {
	ID             int64
	AdID           int64
	AssetType      int
	Filename       string
	OriginalWidth  int
	OriginalHeight int
}

// Validate rejects unknown image asset types.
func (a NativeAdImageAsset) Validate() error {
	if _, ok := imageAssetTypes[a.AssetType]; !ok {
		return fmt.Errorf("unknown image asset type %d", a.AssetType)
	}
	return nil
}
