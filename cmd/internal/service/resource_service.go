package service

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"byteapi/cmd/internal/domain/entity"
	"byteapi/cmd/internal/domain/store"
	"byteapi/cmd/internal/utils"
	"byteapi/cmd/internal/utils/apierror"
	"byteapi/cmd/internal/utils/validators"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type FilterKind int

const (
	// FilterEq forwards the query parameter verbatim as an equality filter.
	FilterEq FilterKind = iota
	// FilterBool compares against true when the parameter is "true" in any casing.
	FilterBool
	// FilterContains matches rows whose array column holds the parameter.
	FilterContains
)

// ListFilter maps a query parameter onto a column. Empty parameters are ignored.
type ListFilter struct {
	Param string
	Field string
	Kind  FilterKind
}

type LimitRule struct {
	Default int
	Min     int
	Max     int
}

// Access lists the capability each operation requires.
type Access struct {
	Read   entity.Capability
	Create entity.Capability
	Update entity.Capability
	Delete entity.Capability
}

// Resource describes one table exposed through the CRUD template.
type Resource struct {
	Label  string // "Team member"
	Plural string // "team members"
	Table  string
	Key    string

	// Required fields in the order they are reported when missing.
	Required []string
	Optional []string
	// Defaults fills fields absent from a create body.
	Defaults func() store.Record

	Updatable []string
	Rules     []validators.Rule

	// Attribution is the column stamped with the caller uid. It is only
	// re-stamped on update when AttributeOnUpdate is set.
	Attribution       string
	AttributeOnUpdate bool

	Filters []ListFilter
	Order   *store.Order
	Limit   *LimitRule

	Access Access
}

func (r *Resource) singular() string {
	return strings.ToLower(r.Label)
}

// ResourceService implements validate, delegate and shape for a single
// Resource. It never checks roles, the router does that before reaching it.
type ResourceService struct {
	Resource *Resource
	Store    store.Store
	Validate *validator.Validate
}

func NewResourceService(res *Resource, s store.Store, validate *validator.Validate) *ResourceService {
	return &ResourceService{
		Resource: res,
		Store:    s,
		Validate: validate,
	}
}

// Query starts a select on the resource table with its default order.
func (r *ResourceService) Query() *store.Query {
	q := store.From(r.Resource.Table)
	if o := r.Resource.Order; o != nil {
		q.OrderBy(o.Field, o.Desc)
	}
	return q
}

// BuildListQuery applies the resource filters and limit found in params.
func (r *ResourceService) BuildListQuery(params url.Values) (*store.Query, apierror.ErrorResponse) {
	q := r.Query()
	for _, f := range r.Resource.Filters {
		raw := params.Get(f.Param)
		if raw == "" {
			continue
		}

		switch f.Kind {
		case FilterBool:
			q.Eq(f.Field, utils.ParseBool(raw))
		case FilterContains:
			q.Contains(f.Field, raw)
		default:
			q.Eq(f.Field, raw)
		}
	}

	if rule := r.Resource.Limit; rule != nil {
		limit, apierr := ParseLimit(params.Get("limit"), *rule)
		if apierr != nil {
			return nil, apierr
		}
		q.WithLimit(limit)
	}
	return q, nil
}

func (r *ResourceService) List(ctx context.Context, params url.Values) ([]store.Record, apierror.ErrorResponse) {
	q, apierr := r.BuildListQuery(params)
	if apierr != nil {
		return nil, apierr
	}
	return r.Fetch(ctx, q, r.Resource.Plural)
}

// Fetch runs q and always returns a non-nil slice on success. what names
// the rows in the failure message, e.g. "upcoming events".
func (r *ResourceService) Fetch(ctx context.Context, q *store.Query, what string) ([]store.Record, apierror.ErrorResponse) {
	rows, err := r.Store.Select(ctx, q)
	if err != nil {
		log.Errorf("failed to fetch %s: %v", what, err)
		return nil, apierror.NewServerError("Failed to fetch %s", what)
	}

	if rows == nil {
		rows = []store.Record{}
	}
	return rows, nil
}

func (r *ResourceService) Get(ctx context.Context, id string) (store.Record, apierror.ErrorResponse) {
	row, err := r.find(ctx, id)
	if err != nil {
		log.Errorf("failed to fetch %s %s: %v", r.Resource.singular(), id, err)
		return nil, apierror.NewServerError("Failed to fetch %s", r.Resource.singular())
	}

	if row == nil {
		return nil, r.notFound()
	}
	return row, nil
}

func (r *ResourceService) Create(ctx context.Context, actor *entity.User, body store.Record) (store.Record, apierror.ErrorResponse) {
	res := r.Resource
	if missing := validators.MissingFields(body, res.Required); len(missing) > 0 {
		return nil, apierror.NewBadRequest("Missing required fields: %s", strings.Join(missing, ", "))
	}

	if apierr := r.checkRules(body); apierr != nil {
		return nil, apierr
	}

	row := store.Record{}
	if res.Defaults != nil {
		for k, v := range res.Defaults() {
			row[k] = v
		}
	}

	for _, field := range res.Required {
		row[field] = body[field]
	}

	for _, field := range res.Optional {
		if val, ok := body[field]; ok {
			row[field] = val
		}
	}

	if res.Attribution != "" && actor != nil {
		row[res.Attribution] = actor.UID
	}

	created, err := r.Store.Insert(ctx, res.Table, row)
	if errors.Is(err, store.ErrInvalidRecord) {
		log.Debugf("rejected %s create: %v", res.singular(), err)
		return nil, r.invalidRecord()
	}

	if err != nil {
		log.Errorf("failed to create %s: %v", res.singular(), err)
		return nil, r.writeFailed("create")
	}

	if len(created) == 0 {
		log.Errorf("store echoed no row after creating %s", res.singular())
		return nil, r.writeFailed("create")
	}
	return created[0], nil
}

// Update applies the allow-listed fields of body to row id. Existence is
// checked first so a missing row never reaches the store update.
func (r *ResourceService) Update(ctx context.Context, actor *entity.User, id string, body store.Record) (store.Record, apierror.ErrorResponse) {
	res := r.Resource
	if len(body) == 0 {
		return nil, apierror.NoDataError
	}

	patch := store.Record{}
	for _, field := range res.Updatable {
		if val, ok := body[field]; ok {
			patch[field] = val
		}
	}

	if len(patch) == 0 {
		return nil, apierror.NoValidFieldsError
	}

	if apierr := r.checkRules(patch); apierr != nil {
		return nil, apierr
	}

	if res.Attribution != "" && res.AttributeOnUpdate && actor != nil {
		patch[res.Attribution] = actor.UID
	}

	if _, apierr := r.exists(ctx, id, "update"); apierr != nil {
		return nil, apierr
	}

	updated, err := r.Store.Update(ctx, r.byKey(id), patch)
	if errors.Is(err, store.ErrInvalidRecord) {
		log.Debugf("rejected %s %s update: %v", res.singular(), id, err)
		return nil, r.invalidRecord()
	}

	if err != nil {
		log.Errorf("failed to update %s %s: %v", res.singular(), id, err)
		return nil, r.writeFailed("update")
	}

	if len(updated) == 0 {
		log.Errorf("store echoed no row after updating %s %s", res.singular(), id)
		return nil, r.writeFailed("update")
	}
	return updated[0], nil
}

func (r *ResourceService) Delete(ctx context.Context, id string) apierror.ErrorResponse {
	if _, apierr := r.exists(ctx, id, "delete"); apierr != nil {
		return apierr
	}

	if err := r.Store.Delete(ctx, r.byKey(id)); err != nil {
		log.Errorf("failed to delete %s %s: %v", r.Resource.singular(), id, err)
		return r.writeFailed("delete")
	}
	return nil
}

func (r *ResourceService) CreatedMessage() string {
	return r.Resource.Label + " created successfully"
}

func (r *ResourceService) UpdatedMessage() string {
	return r.Resource.Label + " updated successfully"
}

func (r *ResourceService) DeletedMessage() string {
	return r.Resource.Label + " deleted successfully"
}

func (r *ResourceService) checkRules(body store.Record) apierror.ErrorResponse {
	if rule, failed := validators.FirstViolation(r.Validate, body, r.Resource.Rules); failed {
		return apierror.NewBadRequest(rule.Message)
	}
	return nil
}

// exists resolves id before a write. verb only shapes the failure message.
func (r *ResourceService) exists(ctx context.Context, id, verb string) (store.Record, apierror.ErrorResponse) {
	row, err := r.find(ctx, id)
	if err != nil {
		log.Errorf("failed to look up %s %s before %s: %v", r.Resource.singular(), id, verb, err)
		return nil, r.writeFailed(verb)
	}

	if row == nil {
		return nil, r.notFound()
	}
	return row, nil
}

func (r *ResourceService) find(ctx context.Context, id string) (store.Record, error) {
	rows, err := r.Store.Select(ctx, r.byKey(id).WithLimit(1))
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *ResourceService) byKey(id string) *store.Query {
	return store.From(r.Resource.Table).Eq(r.Resource.Key, id)
}

func (r *ResourceService) notFound() *apierror.APIError {
	return apierror.NewNotFound("%s not found", r.Resource.Label)
}

func (r *ResourceService) invalidRecord() *apierror.APIError {
	return apierror.NewBadRequest("Invalid field type for %s", r.Resource.singular())
}

func (r *ResourceService) writeFailed(verb string) *apierror.APIError {
	return apierror.NewServerError("Failed to %s %s", verb, r.Resource.singular())
}

// ParseLimit reads a limit parameter. Missing or non-integer values fall
// back to the default, out of range values are rejected.
func ParseLimit(raw string, rule LimitRule) (int, apierror.ErrorResponse) {
	limit := utils.ParseIntOr(raw, rule.Default)
	if limit < rule.Min || limit > rule.Max {
		return 0, apierror.NewLimitRangeError(rule.Min, rule.Max)
	}
	return limit, nil
}
