package analyticsdto

type RefundOverview struct {
	TotalRefunds     int64            `json:"total_refunds"`
	TotalAmount      int64            `json:"total_amount"`
	AvgRefundAmount  float64          `json:"avg_refund_amount"`
	PendingRefunds   int64            `json:"pending_refunds"`
	CompletedRefunds int64            `json:"completed_refunds"`
	RejectedRefunds  int64            `json:"rejected_refunds"`
	TotalRefunded    int64            `json:"total_refunded"`
	CompletionRate   float64          `json:"completion_rate"`
	StatusBreakdown  map[string]int64 `json:"status_breakdown"`
	MethodBreakdown  map[string]int64 `json:"method_breakdown"`
	ReasonBreakdown  map[string]int64 `json:"reason_breakdown"`
}

type DisputeSummary struct {
	TotalDisputes    int64   `json:"total_disputes"`
	OpenDisputes     int64   `json:"open_disputes"`
	ResolvedDisputes int64   `json:"resolved_disputes"`
	DisputedAmount   int64   `json:"disputed_amount"`
	UpheldRate       float64 `json:"upheld_rate"`
}

type VendorLiabilitySummary struct {
	TotalLiabilities int64   `json:"total_liabilities"`
	OpenLiabilities  int64   `json:"open_liabilities"`
	ClaimedAmount    int64   `json:"claimed_amount"`
	RecoveredAmount  int64   `json:"recovered_amount"`
	WrittenOffAmount int64   `json:"written_off_amount"`
	RecoveryRate     float64 `json:"recovery_rate"`
}

type InsuranceFundStatus struct {
	Balance int64 `json:"balance"`
}

type Dashboard struct {
	Overview      RefundOverview         `json:"overview"`
	Disputes      DisputeSummary         `json:"disputes"`
	Liabilities   VendorLiabilitySummary `json:"liabilities"`
	InsuranceFund InsuranceFundStatus    `json:"insurance_fund"`
	WindowDays    int                    `json:"window_days"`
}
