package token

import (
	"errors"
	"fmt"
)

var (
	ErrUnterminated = errors.New("unterminated")
	ErrUnexpected   = errors.New("unexpected")
	ErrEmptyText    = errors.New("empty statement")
)

type TokenizeErr struct {
	Err error
	Pos Pos
}

func NewTokenizeErr(err error, pos Pos) *TokenizeErr {
	return &TokenizeErr{Err: err, Pos: pos}
}

func (e *TokenizeErr) Error() string {
	return fmt.Sprintf("%s at %s", e.Err, e.Pos)
}

func (e *TokenizeErr) Unwrap() error {
	return e.Err
}

func UnexpectedErr(what string, pos Pos) error {
	return NewTokenizeErr(fmt.Errorf("%w %s", ErrUnexpected, what), pos)
}
