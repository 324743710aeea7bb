package taskform

import (
	"github.com/m04kA/SMC-FieldService/internal/domain"
	"github.com/m04kA/SMC-FieldService/pkg/types"
)

// State задача, которая сейчас создается или редактируется в форме
type State struct {
	ID                int64                   `json:"id"`
	Status            domain.TaskStatus       `json:"status"`
	SelectedService   []int64                 `json:"selectedService"`
	PaymentMethod     string                  `json:"paymentMethod"`
	Cost              float64                 `json:"cost"`
	StartDate         string                  `json:"startDate"`
	EndDate           string                  `json:"endDate"`
	StartTime         types.TimeString        `json:"startTime"`
	EndTime           types.TimeString        `json:"endTime"`
	ResponsibleID     int64                   `json:"responsibleId"`
	ParticipantIDs    []int64                 `json:"participantIds"`
	ClientID          int64                   `json:"clientId"`
	ClientName        string                  `json:"clientName"`
	ClientAddress     domain.Address          `json:"clientAddress"`
	ClientPhone       string                  `json:"clientPhone"`
	Description       string                  `json:"description"`
	SelectedInventory []domain.InventoryUsage `json:"selectedInventory"`
	Photos            []domain.Photo          `json:"photos"`
}

// InitialState пустой шаблон новой задачи
func InitialState() State {
	return State{
		Status:            domain.StatusAbsent,
		SelectedService:   []int64{},
		ParticipantIDs:    []int64{},
		SelectedInventory: []domain.InventoryUsage{},
		Photos:            []domain.Photo{},
	}
}

// IsNew возвращает true, если задача еще не сохранялась на сервере
func (s State) IsNew() bool {
	return s.ID == 0
}

// Clone возвращает копию состояния без общих слайсов
func (s State) Clone() State {
	s.SelectedService = cloneSlice(s.SelectedService)
	s.ParticipantIDs = cloneSlice(s.ParticipantIDs)
	s.SelectedInventory = cloneSlice(s.SelectedInventory)
	s.Photos = cloneSlice(s.Photos)
	return s
}

// ToTask конвертирует форму в доменную задачу
func (s State) ToTask() domain.Task {
	c := s.Clone()
	return domain.Task{
		ID:             c.ID,
		Status:         c.Status,
		ServiceIDs:     c.SelectedService,
		PaymentMethod:  c.PaymentMethod,
		Cost:           c.Cost,
		StartDate:      c.StartDate,
		EndDate:        c.EndDate,
		StartTime:      c.StartTime,
		EndTime:        c.EndTime,
		ResponsibleID:  c.ResponsibleID,
		ParticipantIDs: c.ParticipantIDs,
		ClientID:       c.ClientID,
		ClientName:     c.ClientName,
		ClientAddress:  c.ClientAddress,
		ClientPhone:    c.ClientPhone,
		Description:    c.Description,
		Inventory:      c.SelectedInventory,
		Photos:         c.Photos,
	}
}

// FromTask заполняет форму из задачи, полученной с сервера
func FromTask(t domain.Task) State {
	s := State{
		ID:                t.ID,
		Status:            t.Status,
		SelectedService:   cloneSlice(t.ServiceIDs),
		PaymentMethod:     t.PaymentMethod,
		Cost:              t.Cost,
		StartDate:         domain.DayOf(t.StartDate),
		EndDate:           domain.DayOf(t.EndDate),
		StartTime:         t.StartTime,
		EndTime:           t.EndTime,
		ResponsibleID:     t.ResponsibleID,
		ParticipantIDs:    cloneSlice(t.ParticipantIDs),
		ClientID:          t.ClientID,
		ClientName:        t.ClientName,
		ClientAddress:     t.ClientAddress,
		ClientPhone:       t.ClientPhone,
		Description:       t.Description,
		SelectedInventory: cloneSlice(t.Inventory),
		Photos:            cloneSlice(t.Photos),
	}
	return s
}

// cloneSlice копирует слайс; nil превращается в пустой слайс, чтобы в JSON был []
func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
