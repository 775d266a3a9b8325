package model

import "errors"

var (
	ErrAnswerNotFound     = errors.New("answer not found")
	ErrInvalidAnswerValue = errors.New("answer outside 0-3 range")
	ErrInstrumentMismatch = errors.New("answer count does not match instrument")
	ErrSessionNotFound    = errors.New("session not found")
	ErrBookingIncomplete  = errors.New("booking requires date, time and contact method")
	ErrAlertNotFound      = errors.New("alert not found")
)
