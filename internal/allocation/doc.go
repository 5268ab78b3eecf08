// Package allocation implements the starter-kit allocation engine.
//
// AutoAssignStarterKit runs four steps against one inventory snapshot:
//
//  1. Duplicate guard: refuse when the employee already holds any asset.
//  2. Kit lookup: find the active kit for the job title.
//  3. Planning: first-fit selection per kit line, type matches before
//     category fallbacks, shortfall and maintenance reporting.
//  4. Execution: per-unit conditional writes Available -> Assigned.
//
// Concurrent allocations are safe without sleeping between retries. Every
// unit write is conditional on the version read from the snapshot; a lost
// race re-reads the unit and, if it is gone, moves on to the next matching
// candidate. Calls for the same employee within one process are serialized so
// the guard always sees the earlier call's commits.
package allocation
