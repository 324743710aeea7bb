package feed

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-FieldService/internal/domain"
)

// FilterType тег фильтра
type FilterType string

const (
	FilterStatus        FilterType = "status"
	FilterClient        FilterType = "client"
	FilterResponsible   FilterType = "responsible"
	FilterParticipants  FilterType = "participants"
	FilterPaymentMethod FilterType = "payment_method"
	FilterDateRange     FilterType = "date_range"
)

// Filter закрытый набор предикатов ленты
type Filter interface {
	Type() FilterType
	isFilter()
}

// StatusFilter задача в одном из статусов
type StatusFilter struct {
	Statuses []domain.TaskStatus
}

// ClientFilter задача одного из клиентов
type ClientFilter struct {
	ClientIDs []int64
}

// ResponsibleFilter задача, где ответственный один из сотрудников
type ResponsibleFilter struct {
	EmployeeIDs []int64
}

// ParticipantsFilter задача, в которой участвуют все выбранные сотрудники
type ParticipantsFilter struct {
	EmployeeIDs []int64
}

// PaymentMethodFilter задача с одним из способов оплаты
type PaymentMethodFilter struct {
	Methods []string
}

// DateRangeFilter день начала задачи в диапазоне [From, To], пустая граница не ограничивает
type DateRangeFilter struct {
	From string
	To   string
}

func (StatusFilter) Type() FilterType        { return FilterStatus }
func (ClientFilter) Type() FilterType        { return FilterClient }
func (ResponsibleFilter) Type() FilterType   { return FilterResponsible }
func (ParticipantsFilter) Type() FilterType  { return FilterParticipants }
func (PaymentMethodFilter) Type() FilterType { return FilterPaymentMethod }
func (DateRangeFilter) Type() FilterType     { return FilterDateRange }

func (StatusFilter) isFilter()        {}
func (ClientFilter) isFilter()        {}
func (ResponsibleFilter) isFilter()   {}
func (ParticipantsFilter) isFilter()  {}
func (PaymentMethodFilter) isFilter() {}
func (DateRangeFilter) isFilter()     {}

// FilterSpec описание фильтра из запроса UI
type FilterSpec struct {
	Type     FilterType `json:"type"`
	Statuses []string   `json:"statuses,omitempty"`
	IDs      []int64    `json:"ids,omitempty"`
	Methods  []string   `json:"methods,omitempty"`
	From     string     `json:"from,omitempty"`
	To       string     `json:"to,omitempty"`
}

// ParseFilter собирает типизированный фильтр из описания
func ParseFilter(spec FilterSpec) (Filter, error) {
	switch spec.Type {
	case FilterStatus:
		statuses := make([]domain.TaskStatus, 0, len(spec.Statuses))
		for _, s := range spec.Statuses {
			status := domain.TaskStatus(s)
			if status == domain.StatusAbsent || !status.IsKnown() {
				return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidFilter, s)
			}
			statuses = append(statuses, status)
		}
		return StatusFilter{Statuses: statuses}, nil

	case FilterClient:
		return ClientFilter{ClientIDs: spec.IDs}, nil

	case FilterResponsible:
		return ResponsibleFilter{EmployeeIDs: spec.IDs}, nil

	case FilterParticipants:
		return ParticipantsFilter{EmployeeIDs: spec.IDs}, nil

	case FilterPaymentMethod:
		return PaymentMethodFilter{Methods: spec.Methods}, nil

	case FilterDateRange:
		for _, d := range []string{spec.From, spec.To} {
			if d == "" {
				continue
			}
			if _, err := time.Parse(domain.DateFormat, d); err != nil {
				return nil, fmt.Errorf("%w: date %q", ErrInvalidFilter, d)
			}
		}
		if spec.From != "" && spec.To != "" && spec.From > spec.To {
			return nil, fmt.Errorf("%w: from after to", ErrInvalidFilter)
		}
		return DateRangeFilter{From: spec.From, To: spec.To}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, spec.Type)
	}
}

// ParseFilters собирает список фильтров с сохранением порядка
func ParseFilters(specs []FilterSpec) ([]Filter, error) {
	filters := make([]Filter, 0, len(specs))
	for _, spec := range specs {
		f, err := ParseFilter(spec)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return filters, nil
}
