package service

import (
	"github.com/alex28786/the-reef/core/config"
	"github.com/alex28786/the-reef/internal/analysis"
	"github.com/alex28786/the-reef/internal/store"
)

type Services struct {
	stores       *store.Stores
	txRunner     TxRunner
	enricher     analysis.Enricher
	prompts      *analysis.PromptCatalog
	resolver     Resolver
	locker       Locker
	workOSCfg    config.WorkOSConfig
	dashboardURL string
	production   bool
}

// NewServices wires the services. The resolver is shared so concurrent
// resolves of one context collapse into a single pass.
func NewServices(stores *store.Stores, txRunner TxRunner, enricher analysis.Enricher, prompts *analysis.PromptCatalog, locker Locker, cfg config.Config) *Services {
	return &Services{
		stores:   stores,
		txRunner: txRunner,
		enricher: enricher,
		prompts:  prompts,
		resolver: NewResolver(
			stores.SharedContexts(),
			stores.Submissions(),
			stores.LLMEvals(),
			enricher,
			locker,
			ResolverConfig{LockTTL: cfg.Redis.LockTTL},
		),
		locker:       locker,
		workOSCfg:    cfg.WorkOS,
		dashboardURL: cfg.DashboardURL,
		production:   cfg.IsProduction(),
	}
}

func (s *Services) Resolver() Resolver {
	return s.resolver
}

func (s *Services) Enricher() analysis.Enricher {
	return s.enricher
}

// Prompts is the analysis prompt catalog, managed through the admin routes.
func (s *Services) Prompts() *analysis.PromptCatalog {
	return s.prompts
}

func (s *Services) Bridge() BridgeService {
	return NewBridgeService(s.stores.Users(), s.stores.SharedContexts(), s.stores.Submissions(), s.txRunner, s.resolver)
}

func (s *Services) Retro() RetroService {
	return NewRetroService(s.stores.Users(), s.stores.SharedContexts(), s.stores.Submissions(), s.txRunner, s.resolver, s.locker)
}

func (s *Services) Submissions() SubmissionService {
	return NewSubmissionService(s.stores.Users(), s.stores.SharedContexts(), s.stores.Submissions())
}

func (s *Services) Reefs() ReefService {
	return NewReefService(s.stores.Users(), s.stores.Reefs(), s.stores.ReefInvitations(), s.txRunner, s.dashboardURL)
}

func (s *Services) Users() UserService {
	return NewUserService(s.stores.Users(), s.stores.Reefs())
}

func (s *Services) Auth() AuthService {
	return NewAuthService(s.stores.Users(), s.stores.Sessions(), s.workOSCfg, s.production)
}
