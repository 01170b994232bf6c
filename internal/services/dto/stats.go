package dto

type MonthlyCount struct {
	Month string `json:"month"` // YYYY-MM
	Count int64  `json:"count"`
}

type TopInfluencer struct {
	InfluencerID string `json:"influencerId"`
	Name         string `json:"name"`
	Applications int64  `json:"applications"`
}

type BrandStatsResponse struct {
	TotalEvents         int64           `json:"totalEvents"`
	ActiveEvents        int64           `json:"activeEvents"`
	TotalApplications   int64           `json:"totalApplications"`
	ApprovedCount       int64           `json:"approvedCount"`
	PendingCount        int64           `json:"pendingCount"`
	MonthlyApplications []MonthlyCount  `json:"monthlyApplications"`
	TopInfluencers      []TopInfluencer `json:"topInfluencers"`
}
