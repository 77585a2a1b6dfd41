package usecase_test

import (
	"context"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/bnema/cookiemsg/internal/application/port"
	"github.com/bnema/cookiemsg/internal/application/port/mocks"
	"github.com/bnema/cookiemsg/internal/application/store"
	"github.com/bnema/cookiemsg/internal/application/tabs"
	"github.com/bnema/cookiemsg/internal/application/validator"
	"github.com/bnema/cookiemsg/internal/domain/entity"
	"github.com/bnema/cookiemsg/internal/domain/schema"
	"github.com/bnema/cookiemsg/internal/infrastructure/persistence/memory"
	"github.com/bnema/cookiemsg/internal/logging"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

type fixture struct {
	registry   *schema.Registry
	storage    *memory.OptionsStorage
	store      *store.Store
	validator  *validator.Validator
	controller *tabs.Controller
}

func newFixture() *fixture {
	return newFixtureWithStorage(nil)
}

// newFixtureWithStorage uses an in-memory storage when storage is nil.
func newFixtureWithStorage(storage port.OptionsStorage) *fixture {
	reg := schema.NewDefaultRegistry()
	f := &fixture{registry: reg}
	if storage == nil {
		f.storage = memory.NewOptionsStorage()
		storage = f.storage
	}
	f.store = store.New(storage, reg, "")
	f.validator = validator.New(reg)
	f.controller = tabs.NewDefaultController(reg, nil)
	return f
}

func capsProvider(t *testing.T, caps ...entity.Capability) *mocks.MockCapabilityProvider {
	ctrl := gomock.NewController(t)
	p := mocks.NewMockCapabilityProvider(ctrl)
	p.EXPECT().CurrentCapabilities(gomock.Any()).Return(entity.NewCapabilitySet(caps...), nil).AnyTimes()
	return p
}

func editor(t *testing.T) *mocks.MockCapabilityProvider {
	return capsProvider(t, entity.CapabilityManageOptions, entity.CapabilityEditAppearance)
}

func manager(t *testing.T) *mocks.MockCapabilityProvider {
	return capsProvider(t, entity.CapabilityManageOptions)
}
