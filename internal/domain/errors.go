package domain

import "errors"

// ErrProfileIncomplete reports that recommendations need a profile first
var ErrProfileIncomplete = errors.New("complete your profile to see recommendations")
