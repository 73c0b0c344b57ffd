package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/weslymega/testefeirastudio-sub000/internal/auth"
	"github.com/weslymega/testefeirastudio-sub000/internal/config"
	"github.com/weslymega/testefeirastudio-sub000/internal/email"
	"github.com/weslymega/testefeirastudio-sub000/internal/models"
	"github.com/weslymega/testefeirastudio-sub000/internal/store"
)

const passwordResetTTL = 20 * time.Minute

// IUserService handles the account profile and the cosmetic auth flows
// (register, login, forgot password). There is no enforcement behind these
// beyond the admin gate on back-office routes.
type IUserService interface {
	Current(ctx context.Context) models.User
	Register(ctx context.Context, name, emailAddr, password string) (models.User, string, error)
	Login(ctx context.Context, emailAddr, password string) (models.User, string, error)
	UpdateProfile(ctx context.Context, name, phone, location, avatarURL string) (models.User, error)
	RequestPasswordReset(ctx context.Context, emailAddr string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type userService struct {
	store  *store.Store
	cfg    *config.Config
	sender email.Sender
}

// NewUserService creates a new UserService.
func NewUserService(st *store.Store, cfg *config.Config, sender email.Sender) IUserService {
	return &userService{store: st, cfg: cfg, sender: sender}
}

func (s *userService) Current(ctx context.Context) models.User {
	var u models.User
	s.store.View(func(st *store.State) {
		u = st.User
	})
	return u
}

// Register replaces the account profile with a fresh one and returns it
// together with a session token.
func (s *userService) Register(ctx context.Context, name, emailAddr, password string) (models.User, string, error) {
	if name == "" || emailAddr == "" || password == "" {
		return models.User{}, "", ErrInvalidArgument
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, "", err
	}
	now := time.Now().UTC()
	user := models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        emailAddr,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.store.Mutate(ctx, func(st *store.State) []store.CollectionKey {
		st.User = user
		return []store.CollectionKey{store.KeyUser}
	})
	token, err := auth.GenerateJWT(user.ID, user.IsAdmin, s.cfg.JwtSecret, s.cfg.JwtTTL)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

func (s *userService) Login(ctx context.Context, emailAddr, password string) (models.User, string, error) {
	var user models.User
	err := ErrBadCredentials
	s.store.View(func(st *store.State) {
		if st.User.Email == emailAddr && auth.CheckPasswordHash(password, st.User.PasswordHash) {
			user, err = st.User, nil
		}
	})
	if err != nil {
		return models.User{}, "", err
	}
	token, err := auth.GenerateJWT(user.ID, user.IsAdmin, s.cfg.JwtSecret, s.cfg.JwtTTL)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

func (s *userService) UpdateProfile(ctx context.Context, name, phone, location, avatarURL string) (models.User, error) {
	var user models.User
	s.store.Mutate(ctx, func(st *store.State) []store.CollectionKey {
		if name != "" {
			st.User.Name = name
		}
		if phone != "" {
			st.User.Phone = phone
		}
		if location != "" {
			st.User.Location = location
		}
		if avatarURL != "" {
			st.User.AvatarURL = avatarURL
		}
		st.User.UpdatedAt = time.Now().UTC()
		user = st.User
		return []store.CollectionKey{store.KeyUser}
	})
	return user, nil
}

// RequestPasswordReset issues a reset token and mails it. An unknown email
// is a silent success so the endpoint does not leak which address exists.
func (s *userService) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	known := false
	token := uuid.NewString()
	s.store.Mutate(ctx, func(st *store.State) []store.CollectionKey {
		if st.User.Email != emailAddr {
			return nil
		}
		known = true
		st.PendingReset = &models.PasswordReset{
			Token:     token,
			Email:     emailAddr,
			ExpiresAt: time.Now().UTC().Add(passwordResetTTL),
		}
		return nil // reset tokens are ephemeral, nothing to persist
	})
	if !known {
		return nil
	}

	subject := fmt.Sprintf("%s - redefinicao de senha", s.cfg.AppName)
	body := fmt.Sprintf("Subject: %s\r\n\r\nUse o codigo %s para redefinir sua senha. Ele expira em %d minutos.\r\n",
		subject, token, int(passwordResetTTL.Minutes()))
	if err := s.sender.Send(ctx, []string{emailAddr}, subject, []byte(body)); err != nil {
		// Mail failure must not break the flow; the token is still usable.
		log.Printf("failed to send password reset email to %s: %v", emailAddr, err)
	}
	return nil
}

func (s *userService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return ErrInvalidArgument
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	outcome := ErrNotFound
	now := time.Now().UTC()
	s.store.Mutate(ctx, func(st *store.State) []store.CollectionKey {
		pending := st.PendingReset
		if pending == nil || pending.Token != token || pending.ExpiresAt.Before(now) {
			return nil
		}
		st.User.PasswordHash = hash
		st.User.UpdatedAt = now
		st.PendingReset = nil
		outcome = nil
		return []store.CollectionKey{store.KeyUser}
	})
	return outcome
}
