package domain

import "errors"

var ErrEmptyText = errors.New("text must not be empty")
var ErrNotOwner = errors.New("only the author may change this item")
var ErrNoCurrentUser = errors.New("no current user")
var ErrInvalidDirection = errors.New("vote direction must be up or down")
var ErrQuestionNotFound = errors.New("question not found")
var ErrCorruptRecord = errors.New("corrupt record")
