package session

import (
	"time"

	"github.com/m04kA/SMC-FieldService/internal/integrations/fieldapi"
	sessionService "github.com/m04kA/SMC-FieldService/internal/service/session"
)

// LoginRequest HTTP request model
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest HTTP request model
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Position string `json:"position"`
}

// SessionResponse HTTP response model, токен наружу не отдается
type SessionResponse struct {
	UserID    int64   `json:"userId"`
	Username  string  `json:"username"`
	Position  string  `json:"position"`
	ExpiresAt *string `json:"expiresAt,omitempty"`
}

func (r *RegisterRequest) ToServiceRequest() fieldapi.RegisterRequest {
	return fieldapi.RegisterRequest{
		Username: r.Username,
		Password: r.Password,
		FullName: r.FullName,
		Phone:    r.Phone,
		Email:    r.Email,
		Position: r.Position,
	}
}

func FromSession(s *sessionService.Session) *SessionResponse {
	resp := &SessionResponse{
		UserID:   s.UserID,
		Username: s.Username,
		Position: s.Position,
	}
	if s.ExpiresAt != nil {
		exp := s.ExpiresAt.Format(time.RFC3339)
		resp.ExpiresAt = &exp
	}
	return resp
}
