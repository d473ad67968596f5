package progress

import (
	"time"

	"github.com/mwaldman/huntboard/internal/model"
)

var interviewStatuses = map[string]bool{
	"Interview":        true,
	"Second Interview": true,
	"Final Interview":  true,
	"Offer":            true,
	"Accepted":         true,
}

var inactiveStatuses = map[string]bool{
	"Rejected": true,
	"Accepted": true,
	"Declined": true,
}

// JobStats derives application metrics from the job list and its status
// history. Response time is measured from the application date to the first
// recorded status transition; jobs without transitions fall back to their
// last_updated date when the status shows movement.
func JobStats(jobs []model.Job, transitions []model.StatusTransition, today time.Time) model.JobStats {
	stats := model.JobStats{TotalApplications: len(jobs)}
	if len(jobs) == 0 {
		return stats
	}

	firstTransition := make(map[int64]time.Time, len(jobs))
	for _, t := range transitions {
		if _, ok := firstTransition[t.JobID]; !ok {
			firstTransition[t.JobID] = t.ChangedAt
		}
	}

	earliest, latest := jobs[0].DateApplied, jobs[0].DateApplied
	interviews := 0
	var responseDays []float64
	weekAgo := startOfDay(today).AddDate(0, 0, -7)

	for _, j := range jobs {
		if j.DateApplied.Before(earliest) {
			earliest = j.DateApplied
		}
		if j.DateApplied.After(latest) {
			latest = j.DateApplied
		}

		if interviewStatuses[j.Status] {
			interviews++
		}
		if !inactiveStatuses[j.Status] {
			stats.ActiveApplications++
		}
		if !j.DateApplied.Before(weekAgo) {
			stats.AppliedThisWeek++
		}

		if at, ok := firstTransition[j.ID]; ok {
			responseDays = append(responseDays, at.Sub(j.DateApplied).Hours()/24)
		} else if j.Status != "Applied" && j.Status != "No Response" {
			responseDays = append(responseDays, j.LastUpdated.Sub(j.DateApplied).Hours()/24)
		}
	}

	if len(jobs) >= 2 {
		weeks := latest.Sub(earliest).Hours() / 24 / 7
		if weeks < 1 {
			weeks = 1
		}
		stats.ApplicationsPerWeek = float64(len(jobs)) / weeks
	} else {
		stats.ApplicationsPerWeek = float64(len(jobs))
	}

	stats.InterviewRate = float64(interviews) / float64(len(jobs)) * 100

	if len(responseDays) > 0 {
		var sum float64
		for _, d := range responseDays {
			sum += d
		}
		stats.AvgResponseDays = sum / float64(len(responseDays))
	}

	return stats
}
