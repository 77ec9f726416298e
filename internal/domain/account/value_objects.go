package account

import (
	"errors"
	"strings"
)

var ErrMissingLineUserID = errors.New("missing LINE user ID")

const maxLineUserIDLen = 64

type LineUserID struct {
	value string
}

func NewLineUserID(s string) (LineUserID, error) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxLineUserIDLen {
		return LineUserID{}, ErrMissingLineUserID
	}
	return LineUserID{value: s}, nil
}

func (l LineUserID) Value() string {
	return l.value
}

func (l LineUserID) String() string {
	return l.value
}
