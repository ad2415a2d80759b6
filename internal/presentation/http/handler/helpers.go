package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetStaffID extracts the staff ID from the Gin context
func GetStaffID(c *gin.Context) *uuid.UUID {
	staffIDVal, exists := c.Get("staff_id")
	if !exists {
		return nil
	}
	staffID, ok := staffIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &staffID
}

// GetStoreID extracts the active store ID from the Gin context. Nil means
// the staff member has not selected a store yet.
func GetStoreID(c *gin.Context) *uuid.UUID {
	storeIDVal, exists := c.Get("store_id")
	if !exists {
		return nil
	}
	storeID, ok := storeIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &storeID
}
