package service

import (
	"errors"
)

// Error kinds. Every domain failure returned by this package wraps exactly one of them.
var (
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("bad request")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUpstream     = errors.New("upstream failure")
)

// Error is a domain failure with a message safe to show to the caller.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func notFound(msg string) error     { return &Error{Kind: ErrNotFound, Message: msg} }
func badRequest(msg string) error   { return &Error{Kind: ErrBadRequest, Message: msg} }
func forbidden(msg string) error    { return &Error{Kind: ErrForbidden, Message: msg} }
func unauthorized(msg string) error { return &Error{Kind: ErrUnauthorized, Message: msg} }

// Messages returned to clients.
const (
	MsgInvalidCredentials = "Invalid credentials"
	MsgTokenNotProvided   = "Token not provided"
	MsgInvalidToken       = "Invalid token"
	MsgUserGone           = "User no longer exists"

	MsgUserNotFound     = "User not found"
	MsgEmailInUse       = "Email already in use"
	MsgFridgeNotFound   = "Fridge not found"
	MsgNoCapacity       = "Fridge has not enough capacity"
	MsgProductNotFound  = "Product not found"
	MsgReceiverNotFound = "Receiver not found"
	MsgSelfGift         = "You can't gift a product to yourself"
	MsgNotProductOwner  = "You are not the owner of this product"
	MsgBothFilters      = "It is not allowed to specify both a fridge id and a location"
	MsgRecipeNotFound   = "Recipe not found"
	MsgNotRecipeOwner   = "You are not the owner of this recipe"
	MsgSuggestionFailed = "Failed to generate recipe suggestions"
)
