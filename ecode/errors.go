package ecode

import (
	"fmt"
)

const (
	requiredMsg = "required"
	invalidMsg  = "invalid"
	negativeMsg = "negative"
	notExistMsg = "does not exist"
	closedMsg   = "closed"
)

// FieldIsRequired returns field required message
func FieldIsRequired(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], requiredMsg)
	}
	return requiredMsg
}

// FieldIsInvalid returns field invalid message
func FieldIsInvalid(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], invalidMsg)
	}
	return invalidMsg
}

// FieldIsNegative returns field negative message
func FieldIsNegative(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], negativeMsg)
	}
	return negativeMsg
}

// NotExist returns not exist message
func NotExist(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], notExistMsg)
	}
	return notExistMsg
}

// Closed returns closed message
func Closed(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], closedMsg)
	}
	return closedMsg
}
