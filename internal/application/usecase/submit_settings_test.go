package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/cookiemsg/internal/application/port"
	"github.com/bnema/cookiemsg/internal/application/port/mocks"
	"github.com/bnema/cookiemsg/internal/application/store"
	"github.com/bnema/cookiemsg/internal/application/usecase"
	"github.com/bnema/cookiemsg/internal/domain/entity"
	"github.com/bnema/cookiemsg/internal/domain/schema"
)

func TestSubmitSettingsUseCase_Execute_SavesAcceptedTab(t *testing.T) {
	ctx := testContext()
	f := newFixture()
	uc := usecase.NewSubmitSettingsUseCase(f.store, f.validator, f.controller, editor(t))

	out, err := uc.Execute(ctx, usecase.SubmitSettingsInput{
		Tab: "styling_options",
		Values: map[string]string{
			"styling.opacity_slider_amount": "150",
			"styling.message_color_picker":  "112233",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, usecase.SubmitDone, out.State)
	assert.Equal(t, []usecase.SubmitState{
		usecase.SubmitIdle,
		usecase.SubmitValidating,
		usecase.SubmitAccepted,
		usecase.SubmitPersisting,
		usecase.SubmitDone,
	}, out.Trace)
	assert.True(t, out.Changed)
	assert.Equal(t, int64(1), out.Version)

	doc := f.store.Load(ctx)
	assert.Equal(t, entity.IntValue(100), f.store.Get(doc, entity.TabStyling, schema.SectionStyling, "opacity_slider_amount"))
	assert.Equal(t, entity.StringValue("#112233"), f.store.Get(doc, entity.TabStyling, schema.SectionStyling, "message_color_picker"))
}

func TestSubmitSettingsUseCase_Execute_RejectedLeavesStorageUntouched(t *testing.T) {
	ctx := testContext()
	f := newFixture()
	uc := usecase.NewSubmitSettingsUseCase(f.store, f.validator, f.controller, editor(t))

	out, err := uc.Execute(ctx, usecase.SubmitSettingsInput{
		Tab: "styling_options",
		Values: map[string]string{
			"styling.opacity_slider_amount": "50",
			"styling.message_color_picker":  "zzzzzz",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, usecase.SubmitRejected, out.State)
	assert.Equal(t, []usecase.SubmitState{
		usecase.SubmitIdle,
		usecase.SubmitValidating,
		usecase.SubmitRejected,
		usecase.SubmitIdle,
	}, out.Trace)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "styling.message_color_picker", out.Errors[0].Field)

	blob, err := f.storage.Read(ctx, store.DefaultNamespace)
	require.NoError(t, err)
	assert.Nil(t, blob, "nothing is written for a rejected submission")
}

func TestSubmitSettingsUseCase_Execute_ResubmitIsIdempotent(t *testing.T) {
	ctx := testContext()
	f := newFixture()
	uc := usecase.NewSubmitSettingsUseCase(f.store, f.validator, f.controller, manager(t))
	input := usecase.SubmitSettingsInput{
		Tab: "content_options",
		Values: map[string]string{
			"content.textarea_warning_text": "We use cookies.",
			"content.input_button_text":     "OK",
		},
	}

	first, err := uc.Execute(ctx, input)
	require.NoError(t, err)
	require.True(t, first.Changed)
	before, err := f.storage.Read(ctx, store.DefaultNamespace)
	require.NoError(t, err)

	second, err := uc.Execute(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, usecase.SubmitDone, second.State)
	assert.False(t, second.Changed)

	after, err := f.storage.Read(ctx, store.DefaultNamespace)
	require.NoError(t, err)
	assert.Equal(t, before.Revision, after.Revision)
	assert.Equal(t, string(before.Data), string(after.Data))
}

func TestSubmitSettingsUseCase_Execute_OnlySubmittedTabChanges(t *testing.T) {
	ctx := testContext()
	f := newFixture()
	uc := usecase.NewSubmitSettingsUseCase(f.store, f.validator, f.controller, editor(t))

	_, err := uc.Execute(ctx, usecase.SubmitSettingsInput{
		Tab:    "styling_options",
		Values: map[string]string{"styling.text_font": "Roboto"},
	})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, usecase.SubmitSettingsInput{
		Tab:    "general_options",
		Values: map[string]string{"general.location_options": "bottom-fixed", "styling.text_font": "Arial"},
	})
	require.NoError(t, err)

	doc := f.store.Load(ctx)
	assert.Equal(t, entity.StringValue("Roboto"), f.store.Get(doc, entity.TabStyling, schema.SectionStyling, "text_font"))
	assert.Equal(t, entity.StringValue("bottom-fixed"), f.store.Get(doc, entity.TabGeneral, schema.SectionGeneral, "location_options"))
}

func TestSubmitSettingsUseCase_Execute_ForbiddenTab(t *testing.T) {
	f := newFixture()
	uc := usecase.NewSubmitSettingsUseCase(f.store, f.validator, f.controller, manager(t))

	out, err := uc.Execute(testContext(), usecase.SubmitSettingsInput{
		Tab:    "styling_options",
		Values: map[string]string{"styling.text_font": "Roboto"},
	})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, entity.ErrTabForbidden)
}

func TestSubmitSettingsUseCase_Execute_UnknownTab(t *testing.T) {
	f := newFixture()
	uc := usecase.NewSubmitSettingsUseCase(f.store, f.validator, f.controller, editor(t))

	_, err := uc.Execute(testContext(), usecase.SubmitSettingsInput{Tab: "network_options"})
	assert.ErrorIs(t, err, entity.ErrUnknownTab)
}

func TestSubmitSettingsUseCase_Execute_WriteConflict(t *testing.T) {
	ctx := testContext()
	storage := mocks.NewMockOptionsStorage(t)
	storage.EXPECT().Read(mock.Anything, store.DefaultNamespace).Return(nil, nil)
	storage.EXPECT().
		Write(mock.Anything, store.DefaultNamespace, mock.Anything, int64(0)).
		Return(int64(0), port.ErrRevisionMismatch)

	f := newFixtureWithStorage(storage)
	uc := usecase.NewSubmitSettingsUseCase(f.store, f.validator, f.controller, editor(t))

	out, err := uc.Execute(ctx, usecase.SubmitSettingsInput{
		Tab:    "styling_options",
		Values: map[string]string{"styling.text_font": "Roboto"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrWriteConflict)
	require.NotNil(t, out)
	assert.Equal(t, usecase.SubmitIdle, out.State)
	assert.Empty(t, out.Errors)
	assert.False(t, out.Changed)
}

func TestSubmitSettingsUseCase_Execute_StorageUnavailable(t *testing.T) {
	f := newFixture()
	f.storage.FailWrites = errors.New("database is locked")
	uc := usecase.NewSubmitSettingsUseCase(f.store, f.validator, f.controller, editor(t))

	_, err := uc.Execute(testContext(), usecase.SubmitSettingsInput{
		Tab:    "styling_options",
		Values: map[string]string{"styling.text_font": "Roboto"},
	})
	assert.ErrorIs(t, err, entity.ErrStoreUnavailable)
}

func TestSubmitSettingsUseCase_Execute_CapabilityLookupFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	caps := mocks.NewMockCapabilityProvider(ctrl)
	caps.EXPECT().CurrentCapabilities(gomock.Any()).Return(nil, errors.New("no session"))

	f := newFixture()
	uc := usecase.NewSubmitSettingsUseCase(f.store, f.validator, f.controller, caps)

	_, err := uc.Execute(context.Background(), usecase.SubmitSettingsInput{Tab: "general_options"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to resolve capabilities")
}

func TestSubmitSettingsUseCase_Execute_NewerFormatIsNotOverwritten(t *testing.T) {
	ctx := testContext()
	f := newFixture()
	stored := []byte("schema = 2\nversion = 1\n\n[options.general_options.general]\nlocation_options = 'bottom-fixed'\n\n[options.content_options.content]\ntextarea_warning_text = 'We use cookies'\n")
	f.storage.Put(store.DefaultNamespace, stored, 1)
	uc := usecase.NewSubmitSettingsUseCase(f.store, f.validator, f.controller, editor(t))

	out, err := uc.Execute(ctx, usecase.SubmitSettingsInput{
		Tab:    "styling_options",
		Values: map[string]string{"styling.text_font": "Roboto"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrStoreUnavailable)
	assert.ErrorIs(t, err, store.ErrNewerFormat)
	require.NotNil(t, out)
	assert.Equal(t, usecase.SubmitIdle, out.State)
	assert.False(t, out.Changed)

	blob, err := f.storage.Read(ctx, store.DefaultNamespace)
	require.NoError(t, err)
	assert.Equal(t, stored, blob.Data)
	assert.Equal(t, int64(1), blob.Revision)
}

func TestSubmitSettingsUseCase_Execute_ExpectedVersion(t *testing.T) {
	ctx := testContext()
	f := newFixture()
	uc := usecase.NewSubmitSettingsUseCase(f.store, f.validator, f.controller, editor(t))

	rendered := f.store.Load(ctx).Version
	first, err := uc.Execute(ctx, usecase.SubmitSettingsInput{
		Tab:             "styling_options",
		Values:          map[string]string{"styling.text_font": "Roboto"},
		ExpectedVersion: &rendered,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Version)

	// A second session still holds the form rendered at version 0.
	out, err := uc.Execute(ctx, usecase.SubmitSettingsInput{
		Tab:             "styling_options",
		Values:          map[string]string{"styling.text_font": "Arial"},
		ExpectedVersion: &rendered,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrWriteConflict)
	assert.Equal(t, usecase.SubmitIdle, out.State)
	assert.Equal(t, []usecase.SubmitState{
		usecase.SubmitIdle,
		usecase.SubmitValidating,
		usecase.SubmitAccepted,
		usecase.SubmitPersisting,
		usecase.SubmitIdle,
	}, out.Trace)

	doc := f.store.Load(ctx)
	assert.Equal(t, entity.StringValue("Roboto"), f.store.Get(doc, entity.TabStyling, schema.SectionStyling, "text_font"))
	assert.Equal(t, int64(1), doc.Version)
}

func TestSubmitState_Transitions(t *testing.T) {
	tests := []struct {
		from, to usecase.SubmitState
		want     bool
	}{
		{usecase.SubmitIdle, usecase.SubmitValidating, true},
		{usecase.SubmitValidating, usecase.SubmitAccepted, true},
		{usecase.SubmitValidating, usecase.SubmitRejected, true},
		{usecase.SubmitRejected, usecase.SubmitIdle, true},
		{usecase.SubmitAccepted, usecase.SubmitPersisting, true},
		{usecase.SubmitPersisting, usecase.SubmitDone, true},
		{usecase.SubmitIdle, usecase.SubmitPersisting, false},
		{usecase.SubmitRejected, usecase.SubmitPersisting, false},
		{usecase.SubmitDone, usecase.SubmitValidating, false},
	}
	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}
