package fieldapi

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-FieldService/internal/domain"
	"github.com/m04kA/SMC-FieldService/pkg/types"
)

// Task модель задачи на стороне API
// Услуги хранятся строкой "1, 2, 3", адрес клиента - канонической строкой
type Task struct {
	ID            int64            `json:"id,omitempty"`
	Status        string           `json:"status"`
	Service       string           `json:"service"`
	PaymentMethod string           `json:"payment_method"`
	Cost          float64          `json:"cost"`
	StartDate     string           `json:"start_date"`
	EndDate       string           `json:"end_date"`
	StartTime     string           `json:"start_time"`
	EndTime       string           `json:"end_time"`
	Responsible   int64            `json:"responsible"`
	Participants  []int64          `json:"participants"`
	ClientID      int64            `json:"client_id"`
	ClientName    string           `json:"client_name"`
	ClientAddress string           `json:"client_address"`
	ClientPhone   string           `json:"client_phone"`
	Description   string           `json:"description"`
	Inventory     []InventoryUsage `json:"inventory"`
	Photos        []Photo          `json:"photos"`
}

// InventoryUsage расход материалов в задаче
type InventoryUsage struct {
	ItemID   int64   `json:"item_id"`
	Name     string  `json:"name,omitempty"`
	Unit     string  `json:"unit,omitempty"`
	Quantity float64 `json:"quantity"`
}

type Photo struct {
	ID         int64     `json:"id"`
	TaskID     int64     `json:"task_id"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ClientModel клиент в формате API
type ClientModel struct {
	ID       int64  `json:"id,omitempty"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type Employee struct {
	ID            int64  `json:"id,omitempty"`
	FullName      string `json:"full_name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Position      string `json:"position"`
	Username      string `json:"username"`
	Password      string `json:"password,omitempty"`
	IsResponsible bool   `json:"is_responsible"`
}

type InventoryItem struct {
	ID       int64   `json:"id,omitempty"`
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Quantity float64 `json:"quantity"`
}

type Service struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}

type PaymentMethod struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type TaskDate struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

// LoginRequest запрос авторизации
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse ответ авторизации
type LoginResponse struct {
	Token    string `json:"token"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Position string `json:"position"`
}

// RegisterRequest запрос регистрации
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Position string `json:"position"`
}

type inventoryConsumption struct {
	Inventory []InventoryUsage `json:"inventory"`
}

type participantTasks struct {
	TaskIDs []int64 `json:"task_ids"`
}

// ToDomain конвертирует задачу API в доменную модель
func (t *Task) ToDomain() (domain.Task, error) {
	serviceIDs, err := domain.ParseServiceIDs(t.Service)
	if err != nil {
		return domain.Task{}, fmt.Errorf("%w: task id=%d: %v", ErrInvalidResponse, t.ID, err)
	}
	startTime, err := types.NewTimeStringFromString(t.StartTime)
	if err != nil {
		return domain.Task{}, fmt.Errorf("%w: task id=%d start_time: %v", ErrInvalidResponse, t.ID, err)
	}
	endTime, err := types.NewTimeStringFromString(t.EndTime)
	if err != nil {
		return domain.Task{}, fmt.Errorf("%w: task id=%d end_time: %v", ErrInvalidResponse, t.ID, err)
	}

	inventory := make([]domain.InventoryUsage, len(t.Inventory))
	for i, u := range t.Inventory {
		inventory[i] = domain.InventoryUsage{
			ItemID:   u.ItemID,
			Name:     u.Name,
			Unit:     u.Unit,
			Quantity: u.Quantity,
			Stock:    u.Quantity,
		}
	}
	photos := make([]domain.Photo, len(t.Photos))
	for i, p := range t.Photos {
		photos[i] = p.ToDomain()
	}

	return domain.Task{
		ID:             t.ID,
		Status:         domain.TaskStatus(t.Status),
		ServiceIDs:     serviceIDs,
		PaymentMethod:  t.PaymentMethod,
		Cost:           t.Cost,
		StartDate:      t.StartDate,
		EndDate:        t.EndDate,
		StartTime:      startTime,
		EndTime:        endTime,
		ResponsibleID:  t.Responsible,
		ParticipantIDs: append([]int64{}, t.Participants...),
		ClientID:       t.ClientID,
		ClientName:     t.ClientName,
		ClientAddress:  domain.ParseAddress(t.ClientAddress),
		ClientPhone:    t.ClientPhone,
		Description:    t.Description,
		Inventory:      inventory,
		Photos:         photos,
	}, nil
}

// FromDomainTask конвертирует доменную задачу в модель API
func FromDomainTask(t domain.Task) Task {
	inventory := make([]InventoryUsage, len(t.Inventory))
	for i, u := range t.Inventory {
		inventory[i] = InventoryUsage{ItemID: u.ItemID, Name: u.Name, Unit: u.Unit, Quantity: u.Quantity}
	}
	photos := make([]Photo, len(t.Photos))
	for i, p := range t.Photos {
		photos[i] = Photo{ID: p.ID, TaskID: p.TaskID, URL: p.URL, UploadedAt: p.UploadedAt}
	}
	participants := t.ParticipantIDs
	if participants == nil {
		participants = []int64{}
	}

	return Task{
		ID:            t.ID,
		Status:        string(t.Status),
		Service:       domain.FormatServiceIDs(t.ServiceIDs),
		PaymentMethod: t.PaymentMethod,
		Cost:          t.Cost,
		StartDate:     t.StartDate,
		EndDate:       t.EndDate,
		StartTime:     t.StartTime.String(),
		EndTime:       t.EndTime.String(),
		Responsible:   t.ResponsibleID,
		Participants:  participants,
		ClientID:      t.ClientID,
		ClientName:    t.ClientName,
		ClientAddress: t.ClientAddress.Encode(),
		ClientPhone:   t.ClientPhone,
		Description:   t.Description,
		Inventory:     inventory,
		Photos:        photos,
	}
}

func (p Photo) ToDomain() domain.Photo {
	return domain.Photo{ID: p.ID, TaskID: p.TaskID, URL: p.URL, UploadedAt: p.UploadedAt}
}

func (c ClientModel) ToDomain() domain.Client {
	return domain.Client{ID: c.ID, FullName: c.FullName, Phone: c.Phone, Address: domain.ParseAddress(c.Address)}
}

func FromDomainClient(c domain.Client) ClientModel {
	return ClientModel{ID: c.ID, FullName: c.FullName, Phone: c.Phone, Address: c.Address.Encode()}
}

func (e Employee) ToDomain() domain.Employee {
	return domain.Employee{
		ID:            e.ID,
		FullName:      e.FullName,
		Phone:         e.Phone,
		Email:         e.Email,
		Position:      e.Position,
		Username:      e.Username,
		IsResponsible: e.IsResponsible,
	}
}

// FromDomainEmployee конвертирует сотрудника; пароль передается только при создании/смене
func FromDomainEmployee(e domain.Employee, password string) Employee {
	return Employee{
		ID:            e.ID,
		FullName:      e.FullName,
		Phone:         e.Phone,
		Email:         e.Email,
		Position:      e.Position,
		Username:      e.Username,
		Password:      password,
		IsResponsible: e.IsResponsible,
	}
}

func (i InventoryItem) ToDomain() domain.InventoryItem {
	return domain.InventoryItem{ID: i.ID, Name: i.Name, Unit: i.Unit, Quantity: i.Quantity}
}

func FromDomainInventoryItem(i domain.InventoryItem) InventoryItem {
	return InventoryItem{ID: i.ID, Name: i.Name, Unit: i.Unit, Quantity: i.Quantity}
}
