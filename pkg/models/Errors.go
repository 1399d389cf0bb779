package models

import (
	"fmt"
)

var (
	ErrInvalidInput = fmt.Errorf("invalid input")
	ErrNotFound     = fmt.Errorf("not found")
)
