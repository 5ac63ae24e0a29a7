package cart

import (
	"strings"

	"order-core/internal/pkg/errs"

	"github.com/google/uuid"
)

type OwnerKind string

const (
	OwnerUser    OwnerKind = "user"
	OwnerSession OwnerKind = "session"
)

// Owner identifies whoever holds the cart: a signed-in user or an anonymous session.
type Owner struct {
	Kind OwnerKind
	ID   string
}

func UserOwner(id uuid.UUID) Owner {
	return Owner{Kind: OwnerUser, ID: id.String()}
}

func SessionOwner(id string) (Owner, error) {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > 128 {
		return Owner{}, errs.New("session id must be 1-128 characters")
	}
	return Owner{Kind: OwnerSession, ID: id}, nil
}

// ParseOwner reads the "<kind>:<id>" form produced by String.
func ParseOwner(s string) (Owner, error) {
	kind, id, ok := strings.Cut(s, ":")
	if !ok {
		return Owner{}, errs.Newf("malformed owner reference %q", s)
	}
	switch OwnerKind(kind) {
	case OwnerUser:
		uid, err := uuid.Parse(id)
		if err != nil {
			return Owner{}, errs.Wrapf(err, "malformed user owner %q", s)
		}
		return UserOwner(uid), nil
	case OwnerSession:
		return SessionOwner(id)
	default:
		return Owner{}, errs.Newf("unknown owner kind %q", kind)
	}
}

func (o Owner) String() string {
	return string(o.Kind) + ":" + o.ID
}

func (o Owner) IsZero() bool {
	return o.Kind == "" && o.ID == ""
}
