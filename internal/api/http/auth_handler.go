package http

import (
	"net/http"

	"gearflow-backend/internal/service"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type AuthHandler struct {
	authSvc service.AuthService
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token   string `json:"token"`
	Profile any    `json:"profile"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := validateBody(req); err != nil {
		respondError(w, err)
		return
	}

	profile, token, err := h.authSvc.Signup(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusCreated, authResponse{Token: token, Profile: profile})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := validateBody(req); err != nil {
		respondError(w, err)
		return
	}

	profile, token, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, authResponse{Token: token, Profile: profile})
}
