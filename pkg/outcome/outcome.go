package outcome

// Kind тип результата операции, который видит UI
type Kind string

const (
	KindSuccess         Kind = "success"
	KindValidationError Kind = "validation_error"
	KindNetworkError    Kind = "network_error"
	KindServerError     Kind = "server_error"
)

// FieldError ошибка конкретного поля формы
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result типизированный результат операции
// Retryable = true означает, что ввод пользователя сохранен и операцию можно повторить
type Result struct {
	Kind        Kind         `json:"kind"`
	Message     string       `json:"message,omitempty"`
	FieldErrors []FieldError `json:"fieldErrors,omitempty"`
	Retryable   bool         `json:"retryable"`
	Err         error        `json:"-"`
}

func Success() Result {
	return Result{Kind: KindSuccess}
}

func Validation(fields []FieldError) Result {
	return Result{
		Kind:        KindValidationError,
		Message:     "заполните обязательные поля",
		FieldErrors: fields,
		Retryable:   true,
	}
}

func Network(err error) Result {
	return Result{
		Kind:      KindNetworkError,
		Message:   "нет связи с сервером, данные сохранены, повторите попытку",
		Retryable: true,
		Err:       err,
	}
}

func Server(err error) Result {
	return Result{
		Kind:      KindServerError,
		Message:   "сервер вернул ошибку, данные сохранены, повторите попытку",
		Retryable: true,
		Err:       err,
	}
}

// OK возвращает true для успешного результата
func (r Result) OK() bool {
	return r.Kind == KindSuccess
}

// Fields возвращает список полей с ошибками
func (r Result) Fields() []string {
	names := make([]string, 0, len(r.FieldErrors))
	for _, fe := range r.FieldErrors {
		names = append(names, fe.Field)
	}
	return names
}
