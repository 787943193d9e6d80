// Package core provides the roster parsing and team partitioning logic.
//
// This package holds all domain logic independent of any UI or transport
// layer. The web server, the teamctl CLI and tests use it without
// modification.
//
// # Architecture
//
// The package is organized around a one-way pipeline:
//
//   - Parser: [ParseLine] turns one free-form line ("1. 홍길동, 남,
//     경기과학고등학교, 경기 수원") into a [Participant]. It never fails;
//     unrecoverable fields get defaults.
//   - Roster: [ReadRoster] decodes an uploaded file (UTF-8 with or without BOM,
//     or CP949) and [ParseRoster] splits a text into lines for the parser.
//   - Partitioner: [Partition] splits one education tier into balanced groups,
//     or groups it by pre-assigned group ids. [BuildGrouping] runs it for every
//     tier and returns a [Grouping].
//   - Export: [WriteCSV] writes a Grouping as a spreadsheet-friendly CSV that
//     the parser reads back.
//   - Service: [Service] keeps in-memory workspaces for the interactive tool
//     and serializes edits (participant fixes, member moves, group add and
//     delete) against them.
//
// # Balanced Partitioning
//
// A tier is sorted by region, school and gender, cut into chunks of the
// target size, and a trailing chunk of at most half the target size is dealt
// round-robin onto the other groups, never past target size + 2:
//
//	groups, err := core.Partition(cohort, 4) // 9 members -> sizes [5 4]
//
// # Error Handling
//
// Technical errors are mapped to Korean user messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - ROS001-ROS005: Roster errors (empty text, unknown rows)
//   - GRP001-GRP005: Grouping errors (size, missing or non-empty groups)
//   - WS001-WS002: Workspace errors (expired, capacity)
//   - FILE001-FILE003: File errors (size, encoding)
//
// # Workspace Lifetime
//
// Workspaces live only in memory. [Service.StartJanitor] drops those idle
// longer than the configured TTL.
package core
