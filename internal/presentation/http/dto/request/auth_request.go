package request

// LoginRequest represents a staff login request
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// SetCurrentStoreRequest selects the staff member's active store
type SetCurrentStoreRequest struct {
	StoreID string `json:"storeId" binding:"required,uuid"`
}
