package service

import "errors"

// Business-rule failures. Controllers map these to HTTP statuses; anything
// else is reported as an internal error.
var (
	ErrTemplateNotFound      = errors.New("Template not found")
	ErrCategoryNotFound      = errors.New("Category not found")
	ErrNoActiveTemplate      = errors.New("No active template found")
	ErrOJTNotFound           = errors.New("OJT application not found")
	ErrNoActiveOJT           = errors.New("No active OJT application found")
	ErrResponseNotFound      = errors.New("Response not found")
	ErrSignatureRequired     = errors.New("Signature is required")
	ErrAnswersRequired       = errors.New("Feedback answers are required")
	ErrInvalidAnswer         = errors.New("Invalid answer value")
	ErrUnknownQuestion       = errors.New("Question does not belong to the active template")
	ErrBlankQuestion         = errors.New("Question text must not be empty")
	ErrBlankCategoryName     = errors.New("Category name must not be empty")
	ErrDuplicateCategory     = errors.New("Duplicate category id")
	ErrFamilyHasNoCategories = errors.New("Categories are only supported for appraisal templates")
	ErrFamilyNotSupported    = errors.New("Operation not supported for this feedback family")
	ErrInvalidAccessCode     = errors.New("Invalid access code")
	ErrAccessCodeMismatch    = errors.New("Access code does not match the OJT application")
	ErrEmailAlreadySent      = errors.New("Email already sent")
	ErrNoSupervisorEmail     = errors.New("No supervisor email on file")
	ErrAlreadyResponded      = errors.New("Feedback already submitted")
	ErrTemplateChanged       = errors.New("Template changed while submitting, please reload the form")
)
