package collection

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/acmlab/labsite/internal/domain"
	"github.com/acmlab/labsite/internal/pkg"
)

// reservedFields are managed by the system and silently dropped from create
// and update payloads.
var reservedFields = []string{"id", "sort_order", "created_at", "updated_at"}

// resource is the generic implementation behind every collection. Mutations
// go through three steps: persist, invalidate the facade cache entry, then
// notify the page rooms. Notification is best-effort and never fails the
// request.
type resource[T any, P record[T]] struct {
	def      Definition
	repo     *repository[T, P]
	cache    *pkg.Cache
	notifier domain.Notifier
}

// NewResource builds a collection resource over db. cache and notifier may be
// nil when caching or realtime is disabled.
func NewResource[T any, P record[T]](def Definition, db *gorm.DB, cache *pkg.Cache, notifier domain.Notifier) Resource {
	if notifier == nil {
		notifier = domain.NopNotifier{}
	}
	return &resource[T, P]{
		def:      def,
		repo:     newRepository[T, P](db, def),
		cache:    cache,
		notifier: notifier,
	}
}

func (s *resource[T, P]) Definition() Definition { return s.def }

func (s *resource[T, P]) List(ctx context.Context, req domain.PageRequest) (any, error) {
	items, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, err
	}
	if req.Paged() {
		return pkg.NewPageResult(items, total, req), nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (s *resource[T, P]) ListVisible(ctx context.Context) (any, error) {
	var statuses []string
	if s.def.StatusField != "" {
		statuses = s.def.VisibleStatuses
	}
	items, err := s.repo.ListByStatus(ctx, statuses)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (s *resource[T, P]) Get(ctx context.Context, id uint) (any, error) {
	return s.repo.Get(ctx, id)
}

func (s *resource[T, P]) Create(ctx context.Context, fields map[string]any) (any, error) {
	fields = stripReserved(fields)
	if err := s.checkRequired(fields); err != nil {
		return nil, err
	}
	if s.def.StatusField != "" && isBlank(fields[s.def.StatusField]) {
		fields[s.def.StatusField] = s.def.DefaultStatus
	}

	rec := P(new(T))
	if err := decodeFields(fields, rec); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}

	s.invalidate()
	s.notify(domain.Event{Action: domain.ActionCreated, EntityID: rec.RecordID()})
	return rec, nil
}

func (s *resource[T, P]) Update(ctx context.Context, id uint, fields map[string]any) (any, error) {
	fields = stripReserved(fields)
	if len(fields) == 0 {
		return nil, domain.Validationf("no updatable fields supplied")
	}

	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := decodeFields(fields, rec); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, err
	}

	s.invalidate()
	s.notify(domain.Event{Action: domain.ActionUpdated, EntityID: id})
	return rec, nil
}

func (s *resource[T, P]) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	s.notify(domain.Event{Action: domain.ActionDeleted, EntityID: id})
	return nil
}

func (s *resource[T, P]) Reorder(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return domain.Validationf("%s must be a non-empty list", s.def.IDListKey)
	}
	if err := s.repo.Reorder(ctx, ids); err != nil {
		return err
	}
	s.invalidate()
	s.notify(domain.Event{Action: domain.ActionReordered, EntityIDs: ids})
	return nil
}

func (s *resource[T, P]) invalidate() {
	if s.cache != nil {
		s.cache.Invalidate(s.def.Name)
	}
}

func (s *resource[T, P]) notify(event domain.Event) {
	event.Timestamp = time.Now().Unix()
	for _, topic := range s.def.Topics {
		s.notifier.Publish(topic, event)
	}
}

func (s *resource[T, P]) checkRequired(fields map[string]any) error {
	var missing []string
	for _, name := range s.def.Required {
		if isBlank(fields[name]) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return domain.Validationf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// decodeFields overlays a JSON field map onto rec. Type mismatches surface as
// validation errors rather than 500s.
func decodeFields(fields map[string]any, rec any) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return domain.Validationf("invalid field values")
	}
	if err := json.Unmarshal(raw, rec); err != nil {
		return domain.Validationf("invalid field values: %v", err)
	}
	return nil
}

func stripReserved(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	for _, k := range reservedFields {
		delete(out, k)
	}
	return out
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}
