// Package ecode provides standardized error-message helpers used across
// the SDK for field validation and state checks.
//
// The helpers build short, consistent messages from an optional field
// name:
//
//	ecode.FieldIsRequired("endpoint") // "endpoint required"
//	ecode.FieldIsInvalid("n")         // "n invalid"
//	ecode.FieldIsNegative("n")        // "n negative"
//	ecode.NotExist("collection")      // "collection does not exist"
package ecode
