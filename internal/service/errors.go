package service

import "errors"

var (
	ErrContextNotFound        = errors.New("shared context not found")
	ErrNotParticipant         = errors.New("not a participant of this reef")
	ErrNoReef                 = errors.New("user has not joined a reef")
	ErrPartnerMissing         = errors.New("reef has no partner yet")
	ErrAlreadySubmitted       = errors.New("already submitted in this round")
	ErrRoundClosed            = errors.New("round already has both submissions")
	ErrNotRevealed            = errors.New("shared context is not revealed yet")
	ErrAlreadyRevealed        = errors.New("shared context is already revealed")
	ErrNotAuthor              = errors.New("only the author can change this submission")
	ErrSubmissionLocked       = errors.New("submission can no longer be revised")
	ErrSubmissionNotFound     = errors.New("submission not found")
	ErrNoMessageToAcknowledge = errors.New("no partner message to acknowledge")
	ErrInvalidInput           = errors.New("invalid input")
	ErrWrongKind              = errors.New("shared context has a different kind")
)
