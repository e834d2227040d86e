package application

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmailExists      = errors.New("email already exists")
	ErrInvalidArgument  = errors.New("invalid argument")
)
