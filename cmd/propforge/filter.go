package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/propforge/propforge/pkg/replay"
	"github.com/vulcand/predicate"
)

// recordPredicate is a compiled filter over failure records.
type recordPredicate func(replay.Record) bool

// compileFilter parses a filter expression into a matcher. Supported
// functions: PropertyIs, PropertyContains, SeedIs, ValueContains,
// OlderThan; combined with && , || and !.
func compileFilter(expr string) (recordPredicate, error) {
	parser, err := predicate.NewParser(predicate.Def{
		Functions: map[string]any{
			"PropertyIs":       propertyIs,
			"PropertyContains": propertyContains,
			"SeedIs":           seedIs,
			"ValueContains":    valueContains,
			"OlderThan":        olderThan,
		},
		Operators: predicate.Operators{
			AND: andRecords,
			OR:  orRecords,
			NOT: notRecords,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create filter parser: %w", err)
	}

	pred, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}

	fn, ok := pred.(recordPredicate)
	if !ok {
		return nil, fmt.Errorf("filter must evaluate to a boolean, got %T", pred)
	}
	return fn, nil
}

func propertyIs(name string) recordPredicate {
	return func(r replay.Record) bool {
		return r.Property == name
	}
}

func propertyContains(part string) recordPredicate {
	return func(r replay.Record) bool {
		return strings.Contains(strings.ToLower(r.Property), strings.ToLower(part))
	}
}

func seedIs(seed int) recordPredicate {
	return func(r replay.Record) bool {
		return r.Seed == uint64(seed)
	}
}

func valueContains(part string) recordPredicate {
	return func(r replay.Record) bool {
		return strings.Contains(r.Value, part)
	}
}

// olderThan matches records created more than the given duration ago,
// e.g. OlderThan("72h").
func olderThan(age string) recordPredicate {
	d, err := time.ParseDuration(age)
	if err != nil {
		return func(replay.Record) bool { return false }
	}
	cutoff := time.Now().Add(-d)
	return func(r replay.Record) bool {
		return r.CreatedAt.Before(cutoff)
	}
}

func andRecords(a, b recordPredicate) recordPredicate {
	return func(r replay.Record) bool {
		return a(r) && b(r)
	}
}

func orRecords(a, b recordPredicate) recordPredicate {
	return func(r replay.Record) bool {
		return a(r) || b(r)
	}
}

func notRecords(a recordPredicate) recordPredicate {
	return func(r replay.Record) bool {
		return !a(r)
	}
}
