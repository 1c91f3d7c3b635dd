package collection

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/acmlab/labsite/internal/domain"
	"github.com/acmlab/labsite/internal/pkg"
)

// order applied to every list query. created_at breaks ties between records
// sharing a sort_order (possible after concurrent creates).
const listOrder = "sort_order ASC, created_at DESC"

// record constrains the pointer type of a collection entity.
type record[T any] interface {
	*T
	RecordID() uint
	SetPosition(p int)
}

type repository[T any, P record[T]] struct {
	db  *gorm.DB
	def Definition
}

func newRepository[T any, P record[T]](db *gorm.DB, def Definition) *repository[T, P] {
	return &repository[T, P]{db: db, def: def}
}

// List returns records in display order, optionally filtered and paginated.
// total is only counted when the request is paginated.
func (r *repository[T, P]) List(ctx context.Context, req domain.PageRequest) ([]T, int64, error) {
	q := r.db.WithContext(ctx).Model(new(T)).
		Scopes(pkg.Filter(req, r.def.FilterFields))

	var total int64
	if req.Paged() {
		if err := q.Count(&total).Error; err != nil {
			return nil, 0, r.mapError(err)
		}
	}

	var items []T
	err := q.Order(listOrder).Scopes(pkg.Paginate(req)).Find(&items).Error
	if err != nil {
		return nil, 0, r.mapError(err)
	}
	return items, total, nil
}

// ListByStatus returns records whose status is in the given set, in display
// order. An empty set returns everything.
func (r *repository[T, P]) ListByStatus(ctx context.Context, statuses []string) ([]T, error) {
	q := r.db.WithContext(ctx).Model(new(T))
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}

	var items []T
	if err := q.Order(listOrder).Find(&items).Error; err != nil {
		return nil, r.mapError(err)
	}
	return items, nil
}

func (r *repository[T, P]) Get(ctx context.Context, id uint) (P, error) {
	rec := P(new(T))
	err := r.db.WithContext(ctx).First(rec, id).Error
	if err != nil {
		return nil, r.mapError(err)
	}
	return rec, nil
}

// Create inserts the record at the end of the collection. The max(sort_order)
// read and the insert share one transaction.
func (r *repository[T, P]) Create(ctx context.Context, rec P) error {
	err := pkg.WithTx(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		var max int
		err := tx.Model(new(T)).
			Select("COALESCE(MAX(sort_order), 0)").
			Scan(&max).Error
		if err != nil {
			return err
		}
		rec.SetPosition(max + 1)
		return tx.Create(rec).Error
	})
	return r.mapError(err)
}

func (r *repository[T, P]) Save(ctx context.Context, rec P) error {
	return r.mapError(r.db.WithContext(ctx).Save(rec).Error)
}

func (r *repository[T, P]) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return r.mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Reorder assigns sort_order = index+1 for each id, all-or-nothing. Ids that
// do not exist fail the whole request before anything is written.
func (r *repository[T, P]) Reorder(ctx context.Context, ids []uint) error {
	err := pkg.WithTx(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		var existing []uint
		err := tx.Model(new(T)).Where("id IN ?", ids).Pluck("id", &existing).Error
		if err != nil {
			return err
		}
		if missing := missingIDs(ids, existing); len(missing) > 0 {
			return domain.Validationf("ids not found: %v", missing)
		}

		for i, id := range ids {
			err := tx.Model(new(T)).Where("id = ?", id).
				Update("sort_order", i+1).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	return r.mapError(err)
}

func missingIDs(requested, existing []uint) []uint {
	seen := make(map[uint]struct{}, len(existing))
	for _, id := range existing {
		seen[id] = struct{}{}
	}
	var missing []uint
	for _, id := range requested {
		if _, ok := seen[id]; !ok {
			missing = append(missing, id)
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing
}

func (r *repository[T, P]) mapError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return domain.NewAppError(domain.CodeInternal,
		fmt.Sprintf("%s query failed", r.def.Name), err)
}
