package utils

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/itchan-dev/minichan/shared/errors"
)

type ThreadTitleValidator struct {
	MaxLen int
}

func (e *ThreadTitleValidator) Title(title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.Validation("Title is empty")
	}
	if e.MaxLen > 0 && utf8.RuneCountInString(title) > e.MaxLen {
		return errors.Validation(fmt.Sprintf("Title is too long (max %d characters)", e.MaxLen))
	}
	return nil
}

type MessageValidator struct {
	MaxLen int
}

func (e *MessageValidator) Text(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.Validation("Text is too short")
	}
	if e.MaxLen > 0 && utf8.RuneCountInString(text) > e.MaxLen {
		return errors.Validation(fmt.Sprintf("Text is too long (max %d characters)", e.MaxLen))
	}
	return nil
}
