package services

import "nexttalk-backend/internal/models"

// SummaryService serves the canned per-room conversation summaries. There is
// no model behind this; the dashboard expects a fixed set of talking points
// per room.
type SummaryService struct{}

func NewSummaryService() *SummaryService {
	return &SummaryService{}
}

var roomSummaries = map[string][]string{
	"room1": {
		"Team discussed project progress with positive updates",
		"Backend API development completed successfully",
		"Frontend development showing good progress",
		"Overall team morale is high and collaborative",
		"No major blockers or issues identified",
	},
	"room2": {
		"Project Alpha coordination meeting scheduled",
		"Review meeting requested for tomorrow",
		"Timeline appears to be on track",
		"Team alignment on project deliverables",
		"Next steps clearly defined",
	},
	"room3": {
		"Casual team conversations",
		"Light-hearted discussions about work-life balance",
		"Team bonding and social interactions",
		"Informal knowledge sharing",
		"Positive team culture evident",
	},
}

var fallbackSummary = []string{
	"Recent conversations in this room",
	"Various topics discussed by team members",
	"Active participation from multiple users",
	"Collaborative communication observed",
	"Regular team interactions maintained",
}

func (s *SummaryService) Summarize(roomID string) models.SummaryResponse {
	points, ok := roomSummaries[roomID]
	if !ok {
		points = fallbackSummary
	}
	return models.SummaryResponse{
		SummaryPoints: points,
		MessageCount:  50,
		TimeRange:     "Last 24 hours",
	}
}
