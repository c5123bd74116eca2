package types

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

// UpdateUserRequest carries only the fields to change; nil means absent.
type UpdateUserRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,min=1"`
	LastName  *string `json:"lastName" binding:"omitempty,min=1"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Password  *string `json:"password" binding:"omitempty,min=8"`
}

// SearchQuery is the query string of GET /users
type SearchQuery struct {
	Search string `form:"search"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type CreateProductRequest struct {
	Name     string `json:"name" binding:"required"`
	Space    int    `json:"space" binding:"required,gt=0"`
	FridgeID string `json:"fridgeId" binding:"required,uuid"`
}

// ProductsQuery narrows bulk product operations. The two filters are mutually exclusive.
type ProductsQuery struct {
	FridgeID string `form:"fridgeId" binding:"omitempty,uuid"`
	Location string `form:"location"`
}

type ReceiverRequest struct {
	ReceiverID string `json:"receiverId" binding:"required,uuid"`
}

type CreateRecipeRequest struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	ProductNames []string `json:"productNames" binding:"required,dive,required"`
}

// UpdateRecipeRequest carries only the fields to change. A nil ProductNames
// leaves the ingredients untouched; an empty list clears them.
type UpdateRecipeRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	UserID       *string  `json:"userId" binding:"omitempty,uuid"`
	ProductNames []string `json:"productNames" binding:"omitempty,dive,required"`
}
