package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/treasury-cli/internal/adapters/draft"
	"github.com/trebuchet-org/treasury-cli/internal/adapters/fs"
	"github.com/trebuchet-org/treasury-cli/internal/adapters/interactive"
	"github.com/trebuchet-org/treasury-cli/internal/adapters/submit"
	"github.com/trebuchet-org/treasury-cli/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewLocalConfigStoreAdapter,
	wire.Bind(new(usecase.LocalConfigRepository), new(*fs.LocalConfigStoreAdapter)),
)

// DraftSet provides draft file loading
var DraftSet = wire.NewSet(
	draft.NewLoaderAdapter,
	wire.Bind(new(usecase.DraftLoader), new(*draft.LoaderAdapter)),
)

// SubmitSet provides the policy submitter
var SubmitSet = wire.NewSet(
	submit.NewSimulatedSubmitter,
	wire.Bind(new(usecase.PolicySubmitter), new(*submit.SimulatedSubmitter)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewPromptAdapter,
	wire.Bind(new(usecase.PolicyPrompter), new(*interactive.PromptAdapter)),

	interactive.NewReviewAdapter,
	wire.Bind(new(usecase.ReviewConfirmer), new(*interactive.ReviewAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	DraftSet,
	SubmitSet,
	InteractiveSet,
)
