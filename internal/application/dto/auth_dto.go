package dto

import "time"

// RegisterRequest body de POST /api/auth/register.
type RegisterRequest struct {
	Nome            string `json:"nome"`
	Email           string `json:"email"`
	Senha           string `json:"senha"`
	Role            string `json:"role"` // admin | financeiro | operacional
	CentroCustoCode string `json:"centro_custo,omitempty"`
}

// LoginRequest body de POST /api/auth/login.
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// AuthResponse resposta dos endpoints de auth.
type AuthResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// PerfilResponse resposta de GET /api/auth/me.
type PerfilResponse struct {
	ID            string    `json:"id"`
	Nome          string    `json:"nome"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	CentroCustoID *string   `json:"centro_custo_id,omitempty"`
	CriadoEm      time.Time `json:"criado_em"`
}
