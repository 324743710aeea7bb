package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Ключи локального хранилища
const (
	KeyUserToken    = "userToken"
	KeyUserID       = "userId"
	KeyUsername     = "username"
	KeyPosition     = "position"
	KeyTaskFormData = "taskFormData"
)

// SessionKeys ключи, которые очищаются при выходе из аккаунта
var SessionKeys = []string{
	KeyUserToken,
	KeyUserID,
	KeyUsername,
	KeyPosition,
}

// ActiveStatuses статусы, отмечаемые точкой в календаре
var ActiveStatuses = []TaskStatus{
	StatusNew,
	StatusInProgress,
}

// TerminalStatuses конечные статусы
var TerminalStatuses = []TaskStatus{
	StatusDone,
	StatusCancelled,
}

// Validation limits
const (
	MaxDescriptionLength = 2000
	MaxPhotoSizeBytes    = 10 << 20
)
