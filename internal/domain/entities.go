package domain

import "time"

// Client клиент
type Client struct {
	ID       int64   `json:"id"`
	FullName string  `json:"fullName"`
	Phone    string  `json:"phone"`
	Address  Address `json:"address"`
}

// Employee сотрудник
// Пароль в модели отсутствует: он передается только в запросах на создание/изменение
type Employee struct {
	ID            int64  `json:"id"`
	FullName      string `json:"fullName"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Position      string `json:"position"`
	Username      string `json:"username"`
	IsResponsible bool   `json:"isResponsible"`
}

// InventoryItem позиция склада
type InventoryItem struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Quantity float64 `json:"quantity"` // остаток на складе
}

// InventoryUsage позиция склада, выбранная в задаче
// Quantity никогда не превышает Stock
type InventoryUsage struct {
	ItemID   int64   `json:"itemId"`
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Quantity float64 `json:"quantity"`
	Stock    float64 `json:"stock"`
}

// Service услуга из справочника
type Service struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}

// PaymentMethod способ оплаты
type PaymentMethod struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Photo фото отчета о выполнении
type Photo struct {
	ID         int64     `json:"id"`
	TaskID     int64     `json:"taskId"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// DayStatus статус задачи на конкретный день (ответ /task-dates)
type DayStatus struct {
	Date   string     `json:"date"`
	Status TaskStatus `json:"status"`
}
