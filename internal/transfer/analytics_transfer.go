package transfer

type Totals struct {
	TotalPosts      int64 `json:"total_posts"`
	TotalEngagement int64 `json:"total_engagement"`
}

type AnalyticsReport struct {
	PlatformStats   map[string]int64   `json:"platform_stats"`
	StatusStats     map[string]int64   `json:"status_stats"`
	EngagementStats map[string]float64 `json:"engagement_stats"`
	Totals
}
