// Package store loads, resolves and saves the options document of an
// installation through a generic key-bytes storage.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/cookiemsg/internal/application/port"
	"github.com/bnema/cookiemsg/internal/domain/entity"
	"github.com/bnema/cookiemsg/internal/domain/schema"
	"github.com/bnema/cookiemsg/internal/domain/validation"
	"github.com/bnema/cookiemsg/internal/logging"
)

// DefaultNamespace is the storage key of the options document.
const DefaultNamespace = "custom_cookie_message"

// Store reads and writes the options document.
type Store struct {
	storage   port.OptionsStorage
	registry  *schema.Registry
	namespace string
}

// New creates a Store over storage. An empty namespace selects DefaultNamespace.
func New(storage port.OptionsStorage, registry *schema.Registry, namespace string) *Store {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Store{
		storage:   storage,
		registry:  registry,
		namespace: namespace,
	}
}

// Namespace returns the storage key used by the store.
func (s *Store) Namespace() string {
	return s.namespace
}

// Load reads the stored document. It never fails: missing or unreadable
// storage yields an empty document, and leaves that do not match a declared
// field (or fail its kind) are dropped. A document in a newer format is
// returned empty and read-only so Save cannot overwrite it.
func (s *Store) Load(ctx context.Context) *entity.OptionsDocument {
	log := logging.FromContext(ctx).With().Str("component", "options-store").Str("namespace", s.namespace).Logger()

	doc := entity.NewOptionsDocument()

	blob, err := s.storage.Read(ctx, s.namespace)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read options, using defaults")
		return doc
	}
	if blob == nil {
		log.Debug().Msg("no stored options, using defaults")
		return doc
	}

	// Keep the revision even if the payload is unusable so the next save
	// replaces it instead of conflicting forever.
	doc.Version = blob.Revision

	decoded, err := decodeDocument(blob.Data)
	if errors.Is(err, ErrNewerFormat) {
		log.Error().Err(err).Int64("revision", blob.Revision).Msg("stored options need a newer release, refusing writes")
		doc.MarkReadOnly()
		return doc
	}
	if err != nil {
		log.Warn().Err(err).Int64("revision", blob.Revision).Msg("stored options are corrupt, using defaults")
		return doc
	}
	if decoded.version != blob.Revision {
		log.Debug().
			Int64("document_version", decoded.version).
			Int64("revision", blob.Revision).
			Msg("document version differs from storage revision")
	}
	for _, path := range decoded.skipped {
		log.Warn().Str("path", path).Msg("dropping malformed stored option")
	}

	dropped := 0
	for _, l := range decoded.leaves {
		field, ok := s.registry.Lookup(l.tab, l.section, l.key)
		if !ok {
			dropped++
			continue
		}
		v, err := validation.SanitizeValue(field.Kind, l.value)
		if err != nil {
			log.Warn().Err(err).Str("field", field.Path()).Msg("dropping invalid stored option")
			continue
		}
		doc.Set(l.tab, l.section, l.key, v)
	}
	if dropped > 0 {
		log.Debug().Int("count", dropped).Msg("dropped options no longer declared")
	}

	log.Debug().Int64("revision", doc.Version).Int("values", doc.Len()).Msg("options loaded")
	return doc
}

// Get resolves a leaf: the stored value, else the field default, else the
// kind's zero value.
func (s *Store) Get(doc *entity.OptionsDocument, tab entity.Tab, section, key string) entity.Value {
	field, declared := s.registry.Lookup(tab, section, key)
	if v, ok := doc.Lookup(tab, section, key); ok {
		return v
	}
	if !declared {
		return entity.Value{}
	}
	return Resolve(doc, tab, field)
}

// Resolve is Get for an already known field of tab.
func Resolve(doc *entity.OptionsDocument, tab entity.Tab, field entity.Field) entity.Value {
	if v, ok := doc.Lookup(tab, field.Section, field.Key); ok {
		return v
	}
	if field.Default.IsSet() {
		return field.Default
	}
	return field.Kind.Zero()
}

// Save writes the whole document at Version+1. It fails with a StoreError of
// kind WriteConflict when the stored revision moved since Load, and of kind
// Unavailable on any other storage failure, including a read-only document.
// On success doc.Version is updated.
func (s *Store) Save(ctx context.Context, doc *entity.OptionsDocument) error {
	log := logging.FromContext(ctx).With().Str("component", "options-store").Str("namespace", s.namespace).Logger()

	if doc.ReadOnly() {
		log.Warn().Int64("revision", doc.Version).Msg("refusing to overwrite options in a newer format")
		return &entity.StoreError{Kind: entity.StoreUnavailable, Err: ErrNewerFormat}
	}

	data, err := encodeDocument(doc, doc.Version+1)
	if err != nil {
		return &entity.StoreError{Kind: entity.StoreUnavailable, Err: err}
	}

	revision, err := s.storage.Write(ctx, s.namespace, data, doc.Version)
	if err != nil {
		if errors.Is(err, port.ErrRevisionMismatch) {
			log.Info().Int64("expected_revision", doc.Version).Msg("options changed concurrently, refusing save")
			return &entity.StoreError{Kind: entity.StoreWriteConflict, Err: err}
		}
		log.Error().Err(err).Msg("failed to write options")
		return &entity.StoreError{Kind: entity.StoreUnavailable, Err: fmt.Errorf("failed to write options: %w", err)}
	}

	doc.Version = revision
	log.Debug().Int64("revision", revision).Int("values", doc.Len()).Msg("options saved")
	return nil
}
