package repository

import "errors"

// Common repository errors
var (
	ErrBoardNotFound     = errors.New("board not found")
	ErrVendorNotFound    = errors.New("vendor not found")
	ErrTaskNotFound      = errors.New("task not found")
	ErrChecklistNotFound = errors.New("checklist item not found")
	ErrCommentNotFound   = errors.New("comment not found")
	ErrGuestNotFound     = errors.New("guest not found")
)
