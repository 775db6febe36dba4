package dataprocessing

// Recognized input column names. Lookups are exact (case and spacing
// sensitive) and every column except Date is optional: a missing column reads
// as empty cells, which the tolerant parser turns into zeros.
const (
	ColumnCampaign    = "Campaign"
	ColumnMediaSource = "Media source"
	ColumnDate        = "Date"
	ColumnCost        = "Cost"
	ColumnRevenue     = "revenue_payme"
	ColumnProfit      = "gross_profit_payme"
	ColumnInstalls    = "Installs appsflyer"
	ColumnCards       = "Unique users ltv days cumulative appsflyer af_card_add_fin"
	ColumnSubs        = "Unique users ltv days cumulative appsflyer af_s2s_subscription_activated"
)

// Per-offset attributed revenue columns are matched by substring instead:
// a column belongs to day offset n when its name contains "Revenue {n} days"
// plus one of the attribution event markers below.
const (
	eventMarkerTransfer = "af_transfer_completed"
	eventMarkerPurchase = "af_purchase"
)
