package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/cookiemsg/internal/application/port"
	"github.com/bnema/cookiemsg/internal/application/store"
	"github.com/bnema/cookiemsg/internal/application/tabs"
	"github.com/bnema/cookiemsg/internal/application/validator"
	"github.com/bnema/cookiemsg/internal/domain/entity"
	"github.com/bnema/cookiemsg/internal/logging"
)

// SubmitState is a step of one submit cycle.
type SubmitState int

const (
	SubmitIdle SubmitState = iota
	SubmitValidating
	SubmitAccepted
	SubmitRejected
	SubmitPersisting
	SubmitDone
)

func (s SubmitState) String() string {
	switch s {
	case SubmitIdle:
		return "idle"
	case SubmitValidating:
		return "validating"
	case SubmitAccepted:
		return "accepted"
	case SubmitRejected:
		return "rejected"
	case SubmitPersisting:
		return "persisting"
	case SubmitDone:
		return "done"
	default:
		return fmt.Sprintf("SubmitState(%d)", int(s))
	}
}

// MarshalText renders the state name.
func (s SubmitState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Persisting may fall back to Idle when the store refuses the write.
var submitTransitions = map[SubmitState][]SubmitState{
	SubmitIdle:       {SubmitValidating},
	SubmitValidating: {SubmitAccepted, SubmitRejected},
	SubmitAccepted:   {SubmitPersisting},
	SubmitRejected:   {SubmitIdle},
	SubmitPersisting: {SubmitDone, SubmitIdle},
}

// CanTransition reports whether a submit cycle may move from s to next.
func (s SubmitState) CanTransition(next SubmitState) bool {
	for _, allowed := range submitTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type submitCycle struct {
	state SubmitState
	trace []SubmitState
}

func newSubmitCycle() *submitCycle {
	return &submitCycle{state: SubmitIdle, trace: []SubmitState{SubmitIdle}}
}

func (c *submitCycle) to(next SubmitState) {
	if !c.state.CanTransition(next) {
		panic(fmt.Sprintf("invalid submit transition %s -> %s", c.state, next))
	}
	c.state = next
	c.trace = append(c.trace, next)
}

// SubmitSettingsUseCase validates a tab submission and persists it.
type SubmitSettingsUseCase struct {
	store      *store.Store
	validator  *validator.Validator
	controller *tabs.Controller
	caps       port.CapabilityProvider
}

// NewSubmitSettingsUseCase creates a new SubmitSettingsUseCase.
func NewSubmitSettingsUseCase(
	optionsStore *store.Store,
	v *validator.Validator,
	controller *tabs.Controller,
	caps port.CapabilityProvider,
) *SubmitSettingsUseCase {
	return &SubmitSettingsUseCase{
		store:      optionsStore,
		validator:  v,
		controller: controller,
		caps:       caps,
	}
}

// SubmitSettingsInput contains the submitted tab and its raw fields keyed by
// field path.
type SubmitSettingsInput struct {
	Tab    string
	Values map[string]string
	// ExpectedVersion is the document version the form was rendered at. When
	// set, a submission against a newer stored version is a write conflict.
	ExpectedVersion *int64
}

// SubmitSettingsOutput describes how the cycle ended.
type SubmitSettingsOutput struct {
	Tab entity.Tab `json:"tab"`
	// State is the outcome: Done, Rejected, or Idle when persisting failed.
	// Trace lists every state the cycle went through.
	State  SubmitState        `json:"state"`
	Trace  []SubmitState      `json:"trace"`
	Errors entity.FieldErrors `json:"errors,omitempty"`
	// Changed is false when the submission matched the stored values and no
	// write was issued.
	Changed bool  `json:"changed"`
	Version int64 `json:"version"`
}

// Execute runs one submit cycle. Field errors are reported in the output, not
// as an error. Unknown or forbidden tabs and store failures are returned as
// errors; a store failure leaves storage untouched.
func (uc *SubmitSettingsUseCase) Execute(ctx context.Context, input SubmitSettingsInput) (*SubmitSettingsOutput, error) {
	caps, err := currentCapabilities(ctx, uc.caps)
	if err != nil {
		return nil, err
	}

	tab, err := uc.controller.Select(input.Tab, caps)
	if err != nil {
		return nil, err
	}
	ctx = logging.WithTab(ctx, string(tab))
	log := logging.FromContext(ctx)

	cycle := newSubmitCycle()
	out := &SubmitSettingsOutput{Tab: tab}
	finish := func(outcome SubmitState) *SubmitSettingsOutput {
		out.State = outcome
		out.Trace = cycle.trace
		return out
	}

	cycle.to(SubmitValidating)
	partial, fieldErrs := uc.validator.Validate(ctx, tab, input.Values)
	if len(fieldErrs) > 0 {
		cycle.to(SubmitRejected)
		cycle.to(SubmitIdle)
		out.Errors = fieldErrs
		log.Info().Int("errors", len(fieldErrs)).Msg("settings submission rejected")
		return finish(SubmitRejected), nil
	}
	cycle.to(SubmitAccepted)

	doc := uc.store.Load(ctx)
	out.Version = doc.Version

	cycle.to(SubmitPersisting)
	if input.ExpectedVersion != nil && *input.ExpectedVersion != doc.Version {
		cycle.to(SubmitIdle)
		log.Info().
			Int64("expected_version", *input.ExpectedVersion).
			Int64("version", doc.Version).
			Msg("settings changed since the form was rendered")
		conflict := &entity.StoreError{
			Kind: entity.StoreWriteConflict,
			Err:  fmt.Errorf("form rendered at version %d, stored version is %d", *input.ExpectedVersion, doc.Version),
		}
		return finish(SubmitIdle), fmt.Errorf("failed to save settings: %w", conflict)
	}
	if !doc.Merge(partial) {
		cycle.to(SubmitDone)
		log.Debug().Msg("settings unchanged, skipping write")
		return finish(SubmitDone), nil
	}

	if err := uc.store.Save(ctx, doc); err != nil {
		cycle.to(SubmitIdle)
		log.Warn().Err(err).Msg("failed to persist settings")
		return finish(SubmitIdle), fmt.Errorf("failed to save settings: %w", err)
	}

	cycle.to(SubmitDone)
	out.Changed = true
	out.Version = doc.Version
	log.Info().Int64("version", doc.Version).Int("values", partial.Len()).Msg("settings saved")
	return finish(SubmitDone), nil
}
