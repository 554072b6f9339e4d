// Package policy holds the authorization table for mission control.
//
// Every privileged operation names an Action and asks Authorize whether the
// verified Actor may perform it against a Resource. The table below is the
// single source of truth; transports and services only supply the inputs.
package policy

import (
	"fmt"

	"github.com/cholospace/mission-control/internal/core/domain"
)

// Action identifies an operation subject to authorization.
type Action string

const (
	ReadBroadcast  Action = "broadcast:read"
	WriteBroadcast Action = "broadcast:write"
	ReadPublicLog  Action = "log:read_public"
	ReadPrivateLog Action = "log:read_private"
	ReadHistory    Action = "log:read_history"
	CreateLog      Action = "log:create"
	ShareLog       Action = "log:share"
	DeleteLog      Action = "log:delete"
	UploadAvatar   Action = "avatar:upload"
	ReadMasterFeed Action = "feed:read_master"
)

// Resource describes the object an action targets. Owner is the username the
// resource belongs to: a log's author, or the identity whose avatar is set.
type Resource struct {
	Owner string
}

type rule struct {
	public bool
	allow  func(actor domain.Actor, res Resource) bool
}

var rules = map[Action]rule{
	ReadBroadcast:  {public: true},
	WriteBroadcast: {allow: admin},
	ReadPublicLog:  {public: true},
	ReadPrivateLog: {allow: ownerOrAdmin},
	ReadHistory:    {allow: ownerOrAdmin},
	CreateLog:      {allow: owner},
	ShareLog:       {allow: ownerOrAdmin},
	DeleteLog:      {allow: ownerOrAdmin},
	UploadAvatar:   {allow: owner},
	ReadMasterFeed: {allow: admin},
}

// Authorize returns nil when actor may perform action on res.
// Anonymous actors are rejected with domain.ErrUnauthenticated on any
// non-public action; authenticated actors failing a rule get
// domain.ErrUnauthorized.
func Authorize(action Action, actor domain.Actor, res Resource) error {
	r, ok := rules[action]
	if !ok {
		return fmt.Errorf("%w: unknown action %q", domain.ErrUnauthorized, action)
	}
	if r.public {
		return nil
	}
	if actor.Anonymous() {
		return domain.ErrUnauthenticated
	}
	if !r.allow(actor, res) {
		return domain.ErrUnauthorized
	}
	return nil
}

// Allowed is the boolean form of Authorize.
func Allowed(action Action, actor domain.Actor, res Resource) bool {
	return Authorize(action, actor, res) == nil
}

// RequiresResource reports whether the rule for action depends on the
// resource owner. Guards evaluated before a resource is loaded can only
// decide actions for which this is false.
func RequiresResource(action Action) bool {
	switch action {
	case ReadBroadcast, WriteBroadcast, ReadPublicLog, ReadMasterFeed:
		return false
	}
	return true
}

func admin(actor domain.Actor, _ Resource) bool {
	return actor.IsAdmin()
}

func owner(actor domain.Actor, res Resource) bool {
	return res.Owner != "" && actor.Username == res.Owner
}

func ownerOrAdmin(actor domain.Actor, res Resource) bool {
	return owner(actor, res) || actor.IsAdmin()
}
