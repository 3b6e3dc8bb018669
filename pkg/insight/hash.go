package insight

import (
	"hash/fnv"
	"sort"
	"strconv"
	"strings"

	"tableflip.dev/tend/pkg/checkin"
	"tableflip.dev/tend/pkg/entry"
)

// DataHash digests check-ins, activities, and goals into a short
// change-detection key. It is FNV-1a (32-bit) over a canonical serialization:
// fields joined with "-" inside a record, records joined with "|", goals
// sorted before joining. Record order for check-ins and activities is
// significant; callers pass them in stored order. This is not a cryptographic
// hash; it only needs to move when the data moves.
func DataHash(checkIns []checkin.CheckIn, activities []*entry.Entry, goals []string) string {
	var b strings.Builder

	for _, c := range checkIns {
		writeRecord(&b,
			c.Date,
			strconv.Itoa(c.EnergyLevel),
			strconv.Itoa(c.PositivityLevel),
			strconv.Itoa(c.FocusLevel),
			strconv.Itoa(c.SleepQuality),
			strings.Join(c.Emotions, ","),
			c.MainGoal,
		)
	}
	for _, a := range activities {
		if a == nil {
			continue
		}
		writeRecord(&b,
			a.Date,
			a.Activity,
			a.Category,
			strconv.Itoa(a.DurationMinutes),
		)
	}

	sorted := append([]string(nil), goals...)
	sort.Strings(sorted)
	for _, g := range sorted {
		writeRecord(&b, g)
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(b.String()))
	return strconv.FormatUint(uint64(h.Sum32()), 36)
}

func writeRecord(b *strings.Builder, fields ...string) {
	if b.Len() > 0 {
		b.WriteByte('|')
	}
	b.WriteString(strings.Join(fields, "-"))
}
