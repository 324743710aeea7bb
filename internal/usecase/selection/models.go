package selection

// Operation операция над выбором в форме
type Operation string

const (
	OpSelect        Operation = "select"
	OpIncrement     Operation = "increment"
	OpDecrement     Operation = "decrement"
	OpSetQuantity   Operation = "set"
	OpRemove        Operation = "remove"
	OpToggleService Operation = "toggle_service"
)

// Request запрос на изменение выбора
type Request struct {
	Op       Operation
	ItemID   int64   // ID позиции склада или услуги для toggle_service
	Quantity float64 // только для OpSetQuantity
}
