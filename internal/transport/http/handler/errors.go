package handler

import (
	"errors"

	"ace-marketplace/internal/feature/post"
	"ace-marketplace/internal/feature/user"
	"ace-marketplace/internal/transport/http/ez"
)

// userErr 把 user 包的错误映射成 HTTP 错误；fallback 是 500 时给客户端的文案
func userErr(err error, fallback string) error {
	var ve *user.ValidationError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &ve):
		return ez.BadRequest(ve.Msg)
	case errors.Is(err, user.ErrDuplicate):
		return ez.Conflict("Email or username already exists")
	case errors.Is(err, user.ErrInvalidCredentials):
		return ez.Unauthorized("Invalid credentials")
	case errors.Is(err, user.ErrNotFound):
		return ez.NotFound("User not found")
	case errors.Is(err, user.ErrForbidden):
		return ez.Forbidden("Not authorized to update this profile")
	case errors.Is(err, user.ErrUpload):
		return ez.Internal("Image upload failed", err)
	default:
		return ez.Internal(fallback, err)
	}
}

func postErr(err error) error {
	var ve *post.ValidationError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &ve):
		return ez.BadRequest(ve.Msg)
	case errors.Is(err, post.ErrUnknownOwner):
		return ez.Unauthorized("User not found")
	case errors.Is(err, post.ErrNotFound):
		return ez.NotFound("Post not found")
	case errors.Is(err, post.ErrForbidden):
		return ez.Forbidden("Not authorized to update this post")
	case errors.Is(err, post.ErrUpload):
		return ez.Internal("Image upload failed", err)
	default:
		return ez.Internal("Request failed", err)
	}
}
