package access

import (
	"errors"
	"fmt"

	"cedar-ads/internal/core/domain"
)

// ErrPermissionDenied is returned by every failed authorization decision.
// Callers should surface it as a generic forbidden outcome; wrapped detail
// text may be attached for diagnostics.
var ErrPermissionDenied = errors.New("permission denied")

// Action is one API operation against a resource. Bulk mutations are
// distinct actions because they are never authorized for anyone.
type Action int

const (
	ActionList Action = iota + 1
	ActionGet
	ActionCreate
	ActionUpdate
	ActionDelete
	ActionBulkCreate
	ActionBulkUpdate
	ActionBulkDelete
)

func (a Action) String() string {
	switch a {
	case ActionList:
		return "list"
	case ActionGet:
		return "get"
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	case ActionBulkCreate:
		return "bulk create"
	case ActionBulkUpdate:
		return "bulk update"
	case ActionBulkDelete:
		return "bulk delete"
	}
	return "unknown"
}

// Resource tags the entity category an access rule applies to. The set is
// closed and known at compile time.
type Resource string

const (
	ResourceAdvertiser Resource = "Advertiser"
	ResourceCampaign   Resource = "Campaign"
	ResourceNativeAd   Resource = "NativeAd"
)

// Target carries the ownership context of the object an action touches. For
// ads this is the owning campaign's advertiser. List and create-without-
// parent actions pass a zero Target.
type Target struct {
	AdvertiserID int64
}

// Predicate decides one (resource, action) combination for a principal.
type Predicate func(p domain.Principal, t Target) error

// Rules binds a predicate to each action of one resource. A nil predicate
// means the action is always allowed once the engine-level checks pass.
type Rules struct {
	List   Predicate
	Get    Predicate
	Create Predicate
	Update Predicate
	Delete Predicate
}

// Engine evaluates access rules keyed by (resource, action). Unknown
// resources are denied.
type Engine struct {
	rules map[Resource]Rules
}

// NewEngine returns an engine with the production rule table: all three
// resource types are advertiser-scoped, so members of the advertisers group
// must own the target and account reps must have it assigned. List is
// allowed for any recognised role; narrowing happens in the row filter.
func NewEngine() *Engine {
	scoped := Rules{
		List:   AnyAdvertiserRole,
		Get:    OwnedByCaller,
		Create: OwnedByCaller,
		Update: OwnedByCaller,
		Delete: OwnedByCaller,
	}
	// An advertiser row is its own ownership scope. Provisioning and
	// removing advertisers stays with staff; owners may read and edit
	// their own record.
	advertiser := scoped
	advertiser.Create = StaffOnly
	advertiser.Delete = StaffOnly
	return &Engine{rules: map[Resource]Rules{
		ResourceAdvertiser: advertiser,
		ResourceCampaign:   scoped,
		ResourceNativeAd:   scoped,
	}}
}

// Authorize decides whether p may perform action on a resource with the
// given ownership target. Precedence is fixed: bulk mutations are denied
// outright before any role is consulted (even superusers), then superuser
// and staff short-circuit to allow, then the per-resource predicate runs.
func (e *Engine) Authorize(p domain.Principal, res Resource, action Action, target Target) error {
	switch action {
	case ActionBulkCreate, ActionBulkUpdate, ActionBulkDelete:
		return fmt.Errorf("%w: %s is never authorized", ErrPermissionDenied, action)
	}

	if p.IsPrivileged() {
		return nil
	}

	rules, ok := e.rules[res]
	if !ok {
		return fmt.Errorf("%w: unknown resource %s", ErrPermissionDenied, res)
	}

	var pred Predicate
	switch action {
	case ActionList:
		pred = rules.List
	case ActionGet:
		pred = rules.Get
	case ActionCreate:
		pred = rules.Create
	case ActionUpdate:
		pred = rules.Update
	case ActionDelete:
		pred = rules.Delete
	default:
		return fmt.Errorf("%w: unknown action %s", ErrPermissionDenied, action)
	}
	if pred == nil {
		return nil
	}
	return pred(p, target)
}

// AnyAdvertiserRole allows members of the advertisers or account_reps
// groups. It carries no ownership check and is only suitable for list
// actions, where the row filter narrows the result afterwards.
func AnyAdvertiserRole(p domain.Principal, _ Target) error {
	if p.InGroup(domain.GroupAdvertisers) || p.InGroup(domain.GroupAccountReps) {
		return nil
	}
	return ErrPermissionDenied
}

// OwnedByCaller allows advertisers acting on their own advertiser and
// account reps acting on an assigned one. Group membership alone is never
// sufficient; the ownership match is mandatory.
func OwnedByCaller(p domain.Principal, t Target) error {
	if p.InGroup(domain.GroupAdvertisers) {
		if p.AdvertiserID != 0 && p.AdvertiserID == t.AdvertiserID {
			return nil
		}
		return fmt.Errorf("%w: advertiser %d does not own advertiser %d",
			ErrPermissionDenied, p.AdvertiserID, t.AdvertiserID)
	}
	if p.InGroup(domain.GroupAccountReps) {
		if p.RepHasAdvertiser(t.AdvertiserID) {
			return nil
		}
		return fmt.Errorf("%w: advertiser %d is not assigned to this account rep",
			ErrPermissionDenied, t.AdvertiserID)
	}
	return ErrPermissionDenied
}

// StaffOnly denies everyone who is not staff or superuser. It exists for
// resources that have no advertiser scoping; the engine short-circuit
// normally handles staff before predicates run, so this is the
// deny-by-default predicate.
func StaffOnly(p domain.Principal, _ Target) error {
	if p.IsPrivileged() {
		return nil
	}
	return ErrPermissionDenied
}
