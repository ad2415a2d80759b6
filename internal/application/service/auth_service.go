package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/ndthang/storepos-api/internal/domain/entity"
	"github.com/ndthang/storepos-api/internal/domain/repository"
	"github.com/ndthang/storepos-api/pkg/apperror"
	"github.com/ndthang/storepos-api/pkg/utils"
)

// AuthService handles staff authentication and store switching
type AuthService struct {
	staffRepo  repository.StaffRepository
	storeRepo  repository.StoreRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(
	staffRepo repository.StaffRepository,
	storeRepo repository.StoreRepository,
	jwtManager *utils.JWTManager,
) *AuthService {
	return &AuthService{
		staffRepo:  staffRepo,
		storeRepo:  storeRepo,
		jwtManager: jwtManager,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput represents the login output. Stores may be empty when the
// assignment lookup failed; login itself still succeeds and the client
// falls back to its default route.
type LoginOutput struct {
	Staff        *entity.Staff
	Stores       []entity.Store
	AccessToken  string
	RefreshToken string
}

// Login authenticates a staff member and returns tokens plus the stores
// they can switch to.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	staff, err := s.staffRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if staff == nil || !staff.Active {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(input.Password, staff.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	// The store list is best-effort: a failure here must not block login.
	stores := []entity.Store{}
	withStores, err := s.staffRepo.GetWithStores(ctx, staff.ID)
	if err != nil {
		log.Printf("Warning: failed to load stores for staff %s: %v", staff.ID, err)
	} else if withStores != nil {
		stores = withStores.Stores
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(staff.ID, staff.Username, staff.Role, staff.CurrentStoreID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(staff.ID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		Staff:        staff,
		Stores:       stores,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// MyStores returns the stores the staff member is assigned to.
func (s *AuthService) MyStores(ctx context.Context, staffID uuid.UUID) ([]entity.Store, error) {
	staff, err := s.staffRepo.GetWithStores(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, apperror.NewNotFoundError("Staff")
	}
	return staff.Stores, nil
}

// SetCurrentStoreOutput carries the updated staff record and a token
// scoped to the newly selected store.
type SetCurrentStoreOutput struct {
	Staff       *entity.Staff
	Store       *entity.Store
	AccessToken string
}

// SetCurrentStore switches the staff member's active store. The store must
// be one they are assigned to.
func (s *AuthService) SetCurrentStore(ctx context.Context, staffID, storeID uuid.UUID) (*SetCurrentStoreOutput, error) {
	staff, err := s.staffRepo.GetWithStores(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, apperror.NewNotFoundError("Staff")
	}
	if !staff.AssignedTo(storeID) {
		return nil, apperror.NewAppError(403, "Bạn không được phân công vào cửa hàng này")
	}

	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperror.NewNotFoundError("Store")
	}

	staff.CurrentStoreID = &storeID
	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return nil, err
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(staff.ID, staff.Username, staff.Role, &storeID)
	if err != nil {
		return nil, err
	}

	return &SetCurrentStoreOutput{
		Staff:       staff,
		Store:       store,
		AccessToken: accessToken,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	staffID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", apperror.ErrInvalidToken
	}

	staff, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return "", err
	}
	if staff == nil || !staff.Active {
		return "", apperror.ErrUnauthorized
	}

	return s.jwtManager.GenerateAccessToken(staff.ID, staff.Username, staff.Role, staff.CurrentStoreID)
}
