package store

import (
	"github.com/alex28786/the-reef/core/db/sqlc"
)

type Stores struct {
	queries *sqlc.Queries
}

func NewStores(queries *sqlc.Queries) *Stores {
	return &Stores{queries: queries}
}

func (s *Stores) Users() UserStore {
	return newUserStore(s.queries)
}

func (s *Stores) Sessions() SessionStore {
	return newSessionStore(s.queries)
}

func (s *Stores) Reefs() ReefStore {
	return newReefStore(s.queries)
}

func (s *Stores) ReefInvitations() ReefInvitationStore {
	return newReefInvitationStore(s.queries)
}

func (s *Stores) SharedContexts() SharedContextStore {
	return newSharedContextStore(s.queries)
}

func (s *Stores) Submissions() SubmissionStore {
	return newSubmissionStore(s.queries)
}

func (s *Stores) SystemPrompts() SystemPromptStore {
	return newSystemPromptStore(s.queries)
}

func (s *Stores) LLMEvals() LLMEvalStore {
	return newLLMEvalStore(s.queries)
}
