package cart

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"order-core/internal/domain/money"
	"order-core/internal/pkg/errs"

	"github.com/google/uuid"
)

type Line struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice money.Money
}

// Snapshot is the frozen content of a cart at checkout time. Once built it is never mutated.
type Snapshot struct {
	owner   Owner
	lines   []Line
	takenAt time.Time
}

func NewSnapshot(owner Owner, lines []Line, takenAt time.Time) (Snapshot, error) {
	if owner.IsZero() {
		return Snapshot{}, errs.Mark(errs.New("cart snapshot has no owner"), errs.ErrInvalidCart)
	}

	seen := make(map[uuid.UUID]struct{}, len(lines))
	copied := make([]Line, 0, len(lines))
	for i, l := range lines {
		if l.ProductID == uuid.Nil {
			return Snapshot{}, errs.Mark(errs.Newf("line %d has no product", i), errs.ErrInvalidCart)
		}
		if l.Quantity <= 0 {
			return Snapshot{}, errs.Mark(errs.Newf("line %d has non-positive quantity %d", i, l.Quantity), errs.ErrInvalidCart)
		}
		if _, dup := seen[l.ProductID]; dup {
			return Snapshot{}, errs.Mark(errs.Newf("product %s appears more than once", l.ProductID), errs.ErrInvalidCart)
		}
		seen[l.ProductID] = struct{}{}
		copied = append(copied, l)
	}

	return Snapshot{owner: owner, lines: copied, takenAt: takenAt}, nil
}

func (s Snapshot) Owner() Owner          { return s.owner }
func (s Snapshot) TakenAt() time.Time    { return s.takenAt }
func (s Snapshot) IsEmpty() bool         { return len(s.lines) == 0 }
func (s Snapshot) Len() int              { return len(s.lines) }
func (s Snapshot) Lines() []Line         { return append([]Line(nil), s.lines...) }
func (s Snapshot) Subtotal() money.Money { return subtotal(s.lines) }

// Fingerprint identifies the cart content independent of when it was taken.
func (s Snapshot) Fingerprint() string {
	var b strings.Builder
	b.WriteString(s.owner.String())
	for _, l := range s.lines {
		fmt.Fprintf(&b, "|%s:%d:%d", l.ProductID, l.Quantity, l.UnitPrice.Minor())
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func subtotal(lines []Line) money.Money {
	total := money.Zero()
	for _, l := range lines {
		total = total.Add(l.UnitPrice.Mul(int64(l.Quantity)))
	}
	return total
}
