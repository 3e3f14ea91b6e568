package shared

const (
	UserID = "user_id"

	StatusForSale    = "for-sale"
	StatusSold       = "sold"
	StatusInEscrow   = "in-escrow"
	StatusForLease   = "for-lease"
	StatusLeased     = "leased"
	StatusPending    = "pending"
	StatusOnHold     = "on-hold"
	StatusCancelled  = "cancelled"
	StatusComingSoon = "coming-soon"

	TypeSingleFamilyHome = "single-family-home"
	TypeCondo            = "condo"
	TypeTownhouse        = "townhouse"
	TypeDuplex           = "duplex"
	TypeFourplex         = "fourplex"
	TypeMultiUnit        = "multi-unit"
	TypeApartment        = "apartment"
	TypeLand             = "land"
	TypeCoOp             = "co-op"

	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)
