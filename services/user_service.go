package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/rcoffee/database"
	"github.com/yeremiapane/rcoffee/models"
	"github.com/yeremiapane/rcoffee/utils"
)

type RegisterInput struct {
	Name     string      `json:"name" validate:"required,max=255"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=6"`
	Role     models.Role `json:"role" validate:"omitempty,oneof=customer cashier"`
}

type AddUserInput struct {
	Name     string            `json:"name" validate:"required,max=255"`
	Email    string            `json:"email" validate:"required,email"`
	Password string            `json:"password" validate:"required,min=6"`
	Role     models.Role       `json:"role" validate:"required,role"`
	Status   models.UserStatus `json:"status" validate:"omitempty,oneof=pending approved"`
}

// UpdateUserInput holds optional changes. Role and id never change.
type UpdateUserInput struct {
	Name     *string            `json:"name" validate:"omitempty,min=1,max=255"`
	Email    *string            `json:"email" validate:"omitempty,email"`
	Password *string            `json:"password" validate:"omitempty,min=6"`
	Status   *models.UserStatus `json:"status" validate:"omitempty,oneof=pending approved"`
}

type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a customer or cashier account. Cashiers wait in pending
// until an admin approves them.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if in.Role == "" {
		in.Role = models.RoleCustomer
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	status := models.UserStatusApproved
	if in.Role == models.RoleCashier {
		status = models.UserStatusPending
	}
	return s.create(ctx, in.Name, in.Email, in.Password, in.Role, status)
}

func (s *UserService) create(ctx context.Context, name, email, password string, role models.Role, status models.UserStatus) (*models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Name: name, Email: email, Password: hash, Role: role, Status: status}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEmailInUse
		}
		return nil, storeErr("user", err)
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
		"status":  user.Status,
	}).Info("user created")
	return user, nil
}

// Authenticate checks credentials and returns the user without its
// password hash.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, storeErr("user", err)
	}
	if !utils.CheckPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	user.Password = ""
	return user, nil
}

// Login authenticates and issues a token. Cashiers still pending approval
// are refused even with the right password.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if user.IsPendingCashier() {
		return nil, ErrAccountPending
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	claims, err := utils.ParseToken(token)
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("user logged in")
	return &LoginResult{Token: token, ExpiresAt: claims.ExpiresAt.Time, User: user}, nil
}

// Logout revokes the token for the rest of its lifetime.
func (s *UserService) Logout(token string) error {
	claims, err := utils.ParseToken(token)
	if err != nil {
		return err
	}
	utils.BlacklistToken(token, claims.ExpiresAt.Time)
	return nil
}

// CurrentUser loads the user behind a token. A pending cashier is not
// treated as signed in.
func (s *UserService) CurrentUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("user", err)
	}
	if user.IsPendingCashier() {
		return nil, ErrAccountPending
	}
	user.Password = ""
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("user", err)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, role models.Role) ([]models.User, error) {
	if role != "" && !role.Valid() {
		return nil, validationError("unknown role %q", role)
	}
	users, err := s.users.List(ctx, role)
	if err != nil {
		return nil, storeErr("users", err)
	}
	return users, nil
}

func (s *UserService) Pending(ctx context.Context) ([]models.User, error) {
	users, err := s.users.ListByStatus(ctx, models.UserStatusPending)
	if err != nil {
		return nil, storeErr("users", err)
	}
	return users, nil
}

// Approve activates a pending account. Admins and super admins only.
func (s *UserService) Approve(ctx context.Context, actor *models.User, id uint) (*models.User, error) {
	if !CanApproveUsers(actor) {
		return nil, ErrForbidden
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("user", err)
	}
	if user.Status == models.UserStatusApproved {
		return user, nil
	}
	user.Status = models.UserStatusApproved
	if err := s.users.Update(ctx, user); err != nil {
		return nil, storeErr("user", err)
	}
	utils.InfoLogger.WithFields(logrus.Fields{"user_id": user.ID, "approved_by": actor.ID}).Info("user approved")
	return user, nil
}

// Delete removes an account. Nobody deletes themselves and only a super
// admin may delete another super admin.
func (s *UserService) Delete(ctx context.Context, actor *models.User, id uint) error {
	if !CanApproveUsers(actor) {
		return ErrForbidden
	}
	if actor.ID == id {
		return validationError("you cannot delete your own account")
	}
	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		return storeErr("user", err)
	}
	if target.IsSuperAdmin() && !actor.IsSuperAdmin() {
		return ErrForbidden
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return storeErr("user", err)
	}
	utils.InfoLogger.WithFields(logrus.Fields{"user_id": id, "deleted_by": actor.ID}).Info("user deleted")
	return nil
}

// Add creates an account with any role. Super admins only.
func (s *UserService) Add(ctx context.Context, actor *models.User, in AddUserInput) (*models.User, error) {
	if !CanManageUsers(actor) {
		return nil, ErrForbidden
	}
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = models.UserStatusApproved
	}
	return s.create(ctx, in.Name, in.Email, in.Password, in.Role, status)
}

// Update edits a user. Super admins may edit anyone; other users may edit
// their own name, email and password.
func (s *UserService) Update(ctx context.Context, actor *models.User, id uint, in UpdateUserInput) (*models.User, error) {
	self := actor != nil && actor.ID == id
	if !CanManageUsers(actor) && !self {
		return nil, ErrForbidden
	}
	if in.Status != nil && !CanManageUsers(actor) {
		return nil, ErrForbidden
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		in.Email = &email
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("user", err)
	}
	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := utils.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}
	if in.Status != nil {
		user.Status = *in.Status
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEmailInUse
		}
		return nil, storeErr("user", err)
	}
	return user, nil
}
