package order

import (
	"strings"

	"order-core/internal/pkg/errs"
)

type AddressKind string

const (
	AddressShipping AddressKind = "shipping"
	AddressBilling  AddressKind = "billing"
)

type Address struct {
	Name       string
	Line1      string
	Line2      string
	City       string
	Region     string
	PostalCode string
	Country    string
}

func (a Address) Validate(kind AddressKind) error {
	missing := make([]string, 0, 4)
	if strings.TrimSpace(a.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(a.Line1) == "" {
		missing = append(missing, "line1")
	}
	if strings.TrimSpace(a.City) == "" {
		missing = append(missing, "city")
	}
	if strings.TrimSpace(a.PostalCode) == "" {
		missing = append(missing, "postal_code")
	}
	if len(strings.TrimSpace(a.Country)) != 2 {
		missing = append(missing, "country")
	}
	if len(missing) > 0 {
		return errs.Mark(
			errs.Newf("%s address: invalid %s", kind, strings.Join(missing, ", ")),
			errs.ErrInvalidAddress,
		)
	}
	return nil
}
