package domain

import "errors"

// Not-found errors
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrStoreNotFound    = errors.New("store not found")
	ErrMemberNotFound   = errors.New("store member not found")
	ErrMenuNotFound     = errors.New("menu not found")
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrFoodItemNotFound = errors.New("food item not found")
	ErrPhotoNotFound    = errors.New("photo not found")
)

// Authorization errors
var (
	ErrAccessDenied     = errors.New("store access denied")
	ErrOwnerCannotLeave = errors.New("store owner cannot leave; transfer ownership or delete the store")
)

// Membership errors
var (
	ErrMemberAlreadyExists = errors.New("user is already a member of this store")
	ErrOwnerRoleNotAllowed = errors.New("owner role cannot be assigned to an employee")
	ErrMembershipInactive  = errors.New("inactive membership cannot be modified")
	ErrInvalidRoleType     = errors.New("invalid role type")
)

// Request errors
var (
	ErrInvalidRequest       = errors.New("invalid request")
	ErrMenuItemNotInMenu    = errors.New("menu item does not belong to this menu")
	ErrReinstateUnavailable = errors.New("account is still within the deletion grace period")
	ErrUserNotDeleted       = errors.New("user account is not deleted")
)
