package services

import "errors"

var (
	ErrNotFound           = errors.New("record not found")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidRole        = errors.New("unknown role")
	ErrSelfModification   = errors.New("cannot change your own role")
	ErrSelfDeletion       = errors.New("cannot delete your own account")
	ErrLastAdminProtected = errors.New("the last admin cannot be demoted or deleted")
	ErrForbiddenDemotion  = errors.New("other admins cannot be demoted")
	ErrForbiddenDeletion  = errors.New("other admins cannot be deleted")
	ErrAnswerNotInOptions = errors.New("answer must match one of the options")
)
