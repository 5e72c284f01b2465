package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"storefront/middleware"
	"storefront/models"
	"storefront/store"
	"storefront/utils"
)

// AccountStore registers and authenticates customers
type AccountStore interface {
	Register(ctx context.Context, name, email, password string) (models.Account, error)
	Authenticate(ctx context.Context, email, password string) (models.Account, error)
}

// UserController handles user-related requests
type UserController struct {
	Accounts AccountStore
	Logger   *zap.Logger
}

// NewUserController creates a new UserController
func NewUserController(accounts AccountStore, logger *zap.Logger) *UserController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserController{Accounts: accounts, Logger: logger}
}

type tokenResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Register handles user registration
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid input")
		return
	}

	acct, err := uc.Accounts.Register(r.Context(), body.Name, body.Email, body.Password)
	switch {
	case errors.Is(err, store.ErrEmailTaken):
		writeError(w, r, http.StatusConflict, "User already exists")
		return
	case errors.Is(err, store.ErrInvalidCredentials):
		writeError(w, r, http.StatusBadRequest, "Email and password are required")
		return
	case err != nil:
		uc.Logger.Error("error creating user", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "Error creating user")
		return
	}

	uc.issueToken(w, r, http.StatusCreated, acct.User())
}

// Login handles user authentication
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid input")
		return
	}

	acct, err := uc.Accounts.Authenticate(r.Context(), creds.Email, creds.Password)
	if errors.Is(err, store.ErrInvalidCredentials) {
		writeError(w, r, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		uc.Logger.Error("login failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "Login failed")
		return
	}

	uc.issueToken(w, r, http.StatusOK, acct.User())
}

// GetProfile returns the signed-in user
func (uc *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.SessionFrom(r.Context()).CurrentUser()
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (uc *UserController) issueToken(w http.ResponseWriter, r *http.Request, status int, user models.User) {
	token, err := utils.GenerateJWT(user)
	if err != nil {
		uc.Logger.Error("error generating token", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "Error generating token")
		return
	}
	writeJSON(w, status, tokenResponse{Token: token, User: user})
}
