package taskform

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-FieldService/internal/domain"
	"github.com/m04kA/SMC-FieldService/pkg/types"
)

// ActionType тег действия в конверте {"type": ..., "payload": ...}
type ActionType string

const (
	ActionUpdateForm    ActionType = "UPDATE_FORM"
	ActionResetForm     ActionType = "RESET_FORM"
	ActionSetForm       ActionType = "SET_FORM"
	ActionSetFieldValue ActionType = "SET_FIELD_VALUE"
)

// Action закрытый набор действий над формой
type Action interface {
	Type() ActionType
	isAction()
}

// Patch частичное обновление формы: nil означает "поле не менять"
type Patch struct {
	ID                *int64                   `json:"id,omitempty"`
	Status            *domain.TaskStatus       `json:"status,omitempty"`
	SelectedService   *[]int64                 `json:"selectedService,omitempty"`
	PaymentMethod     *string                  `json:"paymentMethod,omitempty"`
	Cost              *float64                 `json:"cost,omitempty"`
	StartDate         *string                  `json:"startDate,omitempty"`
	EndDate           *string                  `json:"endDate,omitempty"`
	StartTime         *types.TimeString        `json:"startTime,omitempty"`
	EndTime           *types.TimeString        `json:"endTime,omitempty"`
	ResponsibleID     *int64                   `json:"responsibleId,omitempty"`
	ParticipantIDs    *[]int64                 `json:"participantIds,omitempty"`
	ClientID          *int64                   `json:"clientId,omitempty"`
	ClientName        *string                  `json:"clientName,omitempty"`
	ClientAddress     *domain.Address          `json:"clientAddress,omitempty"`
	ClientPhone       *string                  `json:"clientPhone,omitempty"`
	Description       *string                  `json:"description,omitempty"`
	SelectedInventory *[]domain.InventoryUsage `json:"selectedInventory,omitempty"`
	Photos            *[]domain.Photo          `json:"photos,omitempty"`
}

// UpdateForm поверхностное слияние patch с состоянием
type UpdateForm struct {
	Patch Patch
}

// ResetForm возврат к пустому шаблону
type ResetForm struct{}

// SetForm слияние с нормализацией списка услуг
// Service задается строкой "1, 2, 3" или массивом, nil - не менять
type SetForm struct {
	Patch   Patch
	Service *ServiceIDs
}

// SetFieldValue установка одного поля, собирается через NewSetFieldValue
type SetFieldValue struct {
	Field string
	Patch Patch
}

func (UpdateForm) Type() ActionType    { return ActionUpdateForm }
func (ResetForm) Type() ActionType     { return ActionResetForm }
func (SetForm) Type() ActionType       { return ActionSetForm }
func (SetFieldValue) Type() ActionType { return ActionSetFieldValue }

func (UpdateForm) isAction()    {}
func (ResetForm) isAction()     {}
func (SetForm) isAction()       {}
func (SetFieldValue) isAction() {}

// ServiceIDs список ID услуг, в JSON принимает массив чисел или строку "1, 2, 3"
type ServiceIDs []int64

func (s *ServiceIDs) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var ids []int64
		if err := json.Unmarshal(data, &ids); err != nil {
			return fmt.Errorf("%w: service: %v", ErrInvalidPayload, err)
		}
		if ids == nil {
			ids = []int64{}
		}
		*s = ids
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("%w: service must be an array or a string: %v", ErrInvalidPayload, err)
	}
	ids, err := domain.ParseServiceIDs(str)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	*s = ids
	return nil
}

// envelope конверт действия
type envelope struct {
	Type    ActionType      `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// setFormPayload payload SET_FORM: поля формы плюс исходное поле service
type setFormPayload struct {
	Patch
	Service *ServiceIDs `json:"service,omitempty"`
}

// setFieldPayload payload SET_FIELD_VALUE
type setFieldPayload struct {
	Field string          `json:"field"`
	Value json.RawMessage `json:"value"`
}

// DecodeAction разбирает конверт действия из JSON
func DecodeAction(data []byte) (Action, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	switch env.Type {
	case ActionUpdateForm:
		var p Patch
		if err := decodeStrict(env.Payload, &p); err != nil {
			return nil, err
		}
		return UpdateForm{Patch: p}, nil

	case ActionResetForm:
		return ResetForm{}, nil

	case ActionSetForm:
		var p setFormPayload
		if err := decodeStrict(env.Payload, &p); err != nil {
			return nil, err
		}
		return SetForm{Patch: p.Patch, Service: p.Service}, nil

	case ActionSetFieldValue:
		var p setFieldPayload
		if err := decodeStrict(env.Payload, &p); err != nil {
			return nil, err
		}
		return NewSetFieldValue(p.Field, p.Value)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, env.Type)
	}
}

// NewSetFieldValue собирает действие установки одного поля
// Для service любое значение, кроме массива, превращается в список из одного элемента
func NewSetFieldValue(field string, value json.RawMessage) (SetFieldValue, error) {
	if field == "" {
		return SetFieldValue{}, fmt.Errorf("%w: empty field name", ErrUnknownField)
	}
	if len(bytes.TrimSpace(value)) == 0 {
		value = json.RawMessage("null")
	}

	if field == "service" || field == "selectedService" {
		ids, err := coerceServiceValue(value)
		if err != nil {
			return SetFieldValue{}, err
		}
		return SetFieldValue{Field: "selectedService", Patch: Patch{SelectedService: &ids}}, nil
	}

	key, err := json.Marshal(field)
	if err != nil {
		return SetFieldValue{}, fmt.Errorf("%w: %v", ErrUnknownField, err)
	}
	obj := make([]byte, 0, len(key)+len(value)+3)
	obj = append(obj, '{')
	obj = append(obj, key...)
	obj = append(obj, ':')
	obj = append(obj, value...)
	obj = append(obj, '}')

	var p Patch
	if err := decodeStrict(obj, &p); err != nil {
		return SetFieldValue{}, fmt.Errorf("%w: %q: %v", ErrUnknownField, field, err)
	}
	return SetFieldValue{Field: field, Patch: p}, nil
}

// coerceServiceValue массив оставляет как есть, число или строку заворачивает в список из одного элемента
func coerceServiceValue(value json.RawMessage) ([]int64, error) {
	trimmed := bytes.TrimSpace(value)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		return []int64{}, nil
	case trimmed[0] == '[':
		var ids ServiceIDs
		if err := json.Unmarshal(trimmed, &ids); err != nil {
			return nil, err
		}
		return []int64(ids), nil
	case trimmed[0] == '"':
		// Строка целиком один ID, без разбора по ", "
		var str string
		if err := json.Unmarshal(trimmed, &str); err != nil {
			return nil, fmt.Errorf("%w: service: %v", ErrInvalidPayload, err)
		}
		str = strings.TrimSpace(str)
		if str == "" {
			return []int64{}, nil
		}
		id, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: service %q is not a single id: %v", ErrInvalidPayload, str, err)
		}
		return []int64{id}, nil
	default:
		var id int64
		if err := json.Unmarshal(trimmed, &id); err != nil {
			return nil, fmt.Errorf("%w: service: %v", ErrInvalidPayload, err)
		}
		return []int64{id}, nil
	}
}

func decodeStrict(data []byte, v interface{}) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}
