package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// DefaultClaimTTL bounds how long a claim left by a crashed process blocks
// the employee. It must exceed the allocation timeout.
const DefaultClaimTTL = 2 * time.Minute

var ErrEmployeeClaimed = errors.New("allocation already in progress for employee")

// EmployeeClaimer is implemented by stores shared between processes.
//
// A claim marks one employee's allocation as in progress across all
// instances, so the holdings check and the writes that follow it run for at
// most one caller at a time. The returned release func deletes the claim;
// claims also expire after a TTL.
type EmployeeClaimer interface {
	ClaimEmployee(ctx context.Context, employeeID string) (release func(context.Context) error, err error)
}

// claimKey is the employee id as the holdings check compares it.
func claimKey(employeeID string) string {
	return strings.ToLower(strings.TrimSpace(employeeID))
}

var claimSeq atomic.Uint64

// newClaimToken identifies one claim so a late release cannot delete a
// claim taken by someone else after expiry.
func newClaimToken(now time.Time) string {
	return fmt.Sprintf("%d-%d", now.UnixNano(), claimSeq.Add(1))
}
