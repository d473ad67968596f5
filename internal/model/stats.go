package model

// StudyStats bundles the derived study metrics shown on the dashboard.
type StudyStats struct {
	TotalMinutes      int     `json:"total_minutes"`
	StudyDays         int     `json:"study_days"`
	DailyAverage      float64 `json:"daily_average_minutes"`
	CurrentStreak     int     `json:"current_streak"`
	LongestStreak     int     `json:"longest_streak"`
	WeeklyConsistency float64 `json:"weekly_consistency_pct"`
	TargetProgress    float64 `json:"target_progress"`
	DailyTarget       int     `json:"daily_target_minutes"`
}

// JobStats bundles the derived application metrics.
type JobStats struct {
	TotalApplications   int     `json:"total_applications"`
	ApplicationsPerWeek float64 `json:"applications_per_week"`
	InterviewRate       float64 `json:"interview_rate_pct"`
	AvgResponseDays     float64 `json:"avg_response_days"`
	ActiveApplications  int     `json:"active_applications"`
	AppliedThisWeek     int     `json:"applied_this_week"`
}
