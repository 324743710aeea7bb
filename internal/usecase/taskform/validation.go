package taskform

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator"

	"github.com/m04kA/SMC-FieldService/internal/domain"
	"github.com/m04kA/SMC-FieldService/pkg/outcome"
)

// Сообщения для полей формы
const (
	msgRequired        = "обязательное поле"
	msgServiceRequired = "выберите хотя бы одну услугу"
	msgInvalidDate     = "неверный формат даты, ожидается ГГГГ-ММ-ДД"
	msgInvalidTime     = "неверный формат времени, ожидается ЧЧ:ММ"
	msgTooLong         = "слишком длинное значение"
	msgInvalid         = "некорректное значение"
	msgEndBeforeStart  = "окончание раньше начала"
	msgInvalidAddress  = "адрес не должен содержать запятых и пробелов по краям"
	msgOverStock       = "количество превышает остаток на складе"
	msgNegativeAmount  = "количество не может быть отрицательным"
	msgUnknownItem     = "позиции нет на складе"
)

// submitForm плоское представление формы для проверки тегами validator
type submitForm struct {
	ClientName      string  `json:"clientName" validate:"required,max=255"`
	ClientPhone     string  `json:"clientPhone" validate:"required,max=32"`
	City            string  `json:"clientAddress.city" validate:"required"`
	Street          string  `json:"clientAddress.street" validate:"required"`
	Building        string  `json:"clientAddress.building" validate:"required"`
	StartDate       string  `json:"startDate" validate:"required,date"`
	EndDate         string  `json:"endDate" validate:"omitempty,date"`
	StartTime       string  `json:"startTime" validate:"required,clock"`
	EndTime         string  `json:"endTime" validate:"omitempty,clock"`
	ResponsibleID   int64   `json:"responsibleId" validate:"required"`
	SelectedService []int64 `json:"selectedService" validate:"required,min=1"`
	PaymentMethod   string  `json:"paymentMethod" validate:"required"`
	Cost            float64 `json:"cost" validate:"gte=0"`
	Description     string  `json:"description" validate:"max=2000"`
}

var formValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Теги константные, ошибка регистрации возможна только при опечатке в коде
	if err := v.RegisterValidation("date", isDate); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("clock", isClock); err != nil {
		panic(err)
	}
	return v
}

func isDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != len(domain.DateFormat) {
		return false
	}
	_, err := time.Parse(domain.DateFormat, s)
	return err == nil
}

func isClock(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != len(domain.TimeFormat) {
		return false
	}
	_, err := time.Parse(domain.TimeFormat, s)
	return err == nil
}

// Validate проверяет форму перед отправкой
// Пустой результат означает, что форму можно отправлять
func Validate(state State) []outcome.FieldError {
	form := submitForm{
		ClientName:      strings.TrimSpace(state.ClientName),
		ClientPhone:     strings.TrimSpace(state.ClientPhone),
		City:            strings.TrimSpace(state.ClientAddress.City),
		Street:          strings.TrimSpace(state.ClientAddress.Street),
		Building:        strings.TrimSpace(state.ClientAddress.Building),
		StartDate:       state.StartDate,
		EndDate:         state.EndDate,
		StartTime:       state.StartTime.String(),
		EndTime:         state.EndTime.String(),
		ResponsibleID:   state.ResponsibleID,
		SelectedService: state.SelectedService,
		PaymentMethod:   strings.TrimSpace(state.PaymentMethod),
		Cost:            state.Cost,
		Description:     state.Description,
	}

	// 1. Обязательные поля и форматы
	fieldErrors := make([]outcome.FieldError, 0)
	invalid := make(map[string]bool)

	if err := formValidator.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return []outcome.FieldError{{Field: "form", Message: err.Error()}}
		}
		for _, fe := range verrs {
			invalid[fe.Field()] = true
			fieldErrors = append(fieldErrors, outcome.FieldError{
				Field:   fe.Field(),
				Message: messageFor(fe),
			})
		}
	}

	// 2. Адрес должен кодироваться без потерь
	if err := state.ClientAddress.Validate(); err != nil {
		fieldErrors = append(fieldErrors, outcome.FieldError{Field: "clientAddress", Message: msgInvalidAddress})
	}

	// 3. Окончание не раньше начала
	if state.EndDate != "" && !invalid["startDate"] && !invalid["endDate"] {
		switch {
		case state.EndDate < state.StartDate:
			fieldErrors = append(fieldErrors, outcome.FieldError{Field: "endDate", Message: msgEndBeforeStart})
		case state.EndDate == state.StartDate &&
			!state.EndTime.IsZero() && !invalid["startTime"] && !invalid["endTime"] &&
			state.EndTime.Before(state.StartTime):
			fieldErrors = append(fieldErrors, outcome.FieldError{Field: "endTime", Message: msgEndBeforeStart})
		}
	}

	// 4. Выбранный инвентарь в пределах остатка
	for _, line := range state.SelectedInventory {
		switch {
		case line.Quantity < 0:
			fieldErrors = append(fieldErrors, outcome.FieldError{Field: "selectedInventory", Message: msgNegativeAmount})
		case line.Quantity > line.Stock:
			fieldErrors = append(fieldErrors, outcome.FieldError{Field: "selectedInventory", Message: msgOverStock + ": " + line.Name})
		}
	}

	return fieldErrors
}

// ValidateStock сверяет выбранный инвентарь с актуальными остатками склада
// Stock в самой форме не учитывается: его можно перезаписать через UPDATE_FORM
func ValidateStock(lines []domain.InventoryUsage, items []domain.InventoryItem) []outcome.FieldError {
	stock := make(map[int64]float64, len(items))
	for _, item := range items {
		stock[item.ID] = item.Quantity
	}

	fieldErrors := make([]outcome.FieldError, 0)
	for _, line := range lines {
		available, ok := stock[line.ItemID]
		switch {
		case !ok:
			fieldErrors = append(fieldErrors, outcome.FieldError{Field: "selectedInventory", Message: msgUnknownItem + ": " + line.Name})
		case line.Quantity > available:
			fieldErrors = append(fieldErrors, outcome.FieldError{Field: "selectedInventory", Message: msgOverStock + ": " + line.Name})
		}
	}
	return fieldErrors
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "min":
		if fe.Field() == "selectedService" {
			return msgServiceRequired
		}
		if fe.Tag() == "required" {
			return msgRequired
		}
		return msgInvalid
	case "date":
		return msgInvalidDate
	case "clock":
		return msgInvalidTime
	case "max":
		return msgTooLong
	default:
		return msgInvalid
	}
}
