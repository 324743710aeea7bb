package calendar

import (
	"github.com/m04kA/SMC-FieldService/internal/domain"
	calendarUC "github.com/m04kA/SMC-FieldService/internal/usecase/calendar"
)

// ClientGroupResponse задачи клиента за день
type ClientGroupResponse struct {
	ClientID   int64         `json:"clientId"`
	ClientName string        `json:"clientName"`
	Tasks      []domain.Task `json:"tasks"`
}

// CalendarResponse HTTP response model
type CalendarResponse struct {
	Date       string                `json:"date"`
	Groups     []ClientGroupResponse `json:"groups"`
	MarkedDays []string              `json:"markedDays"`
	Degraded   bool                  `json:"degraded"`
}

func FromUseCaseResponse(resp *calendarUC.Response) *CalendarResponse {
	out := &CalendarResponse{
		Date:       resp.Date,
		Groups:     make([]ClientGroupResponse, 0, len(resp.Groups)),
		MarkedDays: resp.MarkedDays,
		Degraded:   resp.Degraded,
	}
	if out.MarkedDays == nil {
		out.MarkedDays = []string{}
	}
	for _, g := range resp.Groups {
		out.Groups = append(out.Groups, ClientGroupResponse{
			ClientID:   g.ClientID,
			ClientName: g.ClientName,
			Tasks:      g.Tasks,
		})
	}
	return out
}
