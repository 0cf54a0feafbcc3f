package domain

import "errors"

// ErrDuplicate 唯一字段（username / email）冲突
var ErrDuplicate = errors.New("duplicate unique field")
