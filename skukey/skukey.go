// Package skukey encodes a cart line identity as a canonical string:
//
//	{menuEntryID}:{menuItemID}|{groupID}({optID;optID}),{groupID}({optID})
//
// Option IDs within a group are deduplicated and sorted, groups with no
// selected options are omitted, and groups are sorted by ID, so two
// selections that differ only in interaction order produce the same key
// and their quantities merge into one cart line.
package skukey

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Selection maps a modifier group ID to the option IDs selected in it.
type Selection map[string][]string

var idPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// ValidID reports whether s is a well-formed lowercase UUID. Parse
// trusts no embedded ID that fails this check.
func ValidID(s string) bool {
	return idPattern.MatchString(s)
}

// Encode builds the canonical key for a cart line.
func Encode(menuEntryID, menuItemID string, sel Selection) string {
	groupIDs := make([]string, 0, len(sel))
	for groupID, optionIDs := range sel {
		if len(optionIDs) > 0 {
			groupIDs = append(groupIDs, groupID)
		}
	}
	sort.Strings(groupIDs)

	var b strings.Builder
	b.WriteString(menuEntryID)
	b.WriteByte(':')
	b.WriteString(menuItemID)
	b.WriteByte('|')

	for i, groupID := range groupIDs {
		if i > 0 {
			b.WriteByte(',')
		}
		seen := make(map[string]bool, len(sel[groupID]))
		optionIDs := make([]string, 0, len(sel[groupID]))
		for _, optionID := range sel[groupID] {
			if !seen[optionID] {
				seen[optionID] = true
				optionIDs = append(optionIDs, optionID)
			}
		}
		sort.Strings(optionIDs)

		b.WriteString(groupID)
		b.WriteByte('(')
		b.WriteString(strings.Join(optionIDs, ";"))
		b.WriteByte(')')
	}

	return b.String()
}

// Parse is the inverse of Encode. It fails with an error on any string
// outside the canonical grammar and never panics.
func Parse(key string) (menuEntryID, menuItemID string, sel Selection, err error) {
	head, tail, found := strings.Cut(key, "|")
	if !found {
		return "", "", nil, fmt.Errorf("sku key %q: missing selection separator", key)
	}

	entryID, itemID, found := strings.Cut(head, ":")
	if !found {
		return "", "", nil, fmt.Errorf("sku key %q: missing item separator", key)
	}
	if !ValidID(entryID) {
		return "", "", nil, fmt.Errorf("sku key %q: invalid menu entry id %q", key, entryID)
	}
	if !ValidID(itemID) {
		return "", "", nil, fmt.Errorf("sku key %q: invalid menu item id %q", key, itemID)
	}

	sel = Selection{}
	if tail == "" {
		return entryID, itemID, sel, nil
	}

	for _, part := range strings.Split(tail, ",") {
		groupID, rest, found := strings.Cut(part, "(")
		if !found || !strings.HasSuffix(rest, ")") {
			return "", "", nil, fmt.Errorf("sku key %q: malformed group segment %q", key, part)
		}
		if !ValidID(groupID) {
			return "", "", nil, fmt.Errorf("sku key %q: invalid group id %q", key, groupID)
		}
		if _, dup := sel[groupID]; dup {
			return "", "", nil, fmt.Errorf("sku key %q: duplicate group %q", key, groupID)
		}

		body := strings.TrimSuffix(rest, ")")
		if body == "" {
			return "", "", nil, fmt.Errorf("sku key %q: empty group %q", key, groupID)
		}
		optionIDs := strings.Split(body, ";")
		for _, optionID := range optionIDs {
			if !ValidID(optionID) {
				return "", "", nil, fmt.Errorf("sku key %q: invalid option id %q", key, optionID)
			}
		}
		sel[groupID] = optionIDs
	}

	return entryID, itemID, sel, nil
}
