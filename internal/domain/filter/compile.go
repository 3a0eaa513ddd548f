package filter

import "fmt"

// alwaysTrueSQL and alwaysFalseSQL stand in for the empty And/Or
// identities and for a Not of either.
const (
	alwaysTrueSQL  = "TRUE"
	alwaysFalseSQL = "FALSE"
)

type builder struct {
	args       []interface{}
	paramIndex int
}

func (b *builder) param(v interface{}) string {
	placeholder := fmt.Sprintf("$%d", b.paramIndex)
	b.args = append(b.args, v)
	b.paramIndex++
	return placeholder
}

// Compile turns f into a SQL boolean expression evaluable against the
// pictures table (aliased "p"), starting placeholder numbering at
// startParamIndex so the caller can splice the result into a larger
// query. When candidateIDs is non-empty it is AND-ed into the result as
// an additional "p.id = ANY($n)" restriction, matching
// compile(filter, candidate_set?).
//
// Slice-valued args (tag/group id lists, EXIF equality value lists) are
// returned as plain Go slices; the caller must wrap them with
// pq.Array(...) before passing to the driver, since this package has no
// reason to depend on the postgres driver directly.
func Compile(f Filter, candidateIDs []string, startParamIndex int) (sql string, args []interface{}, nextParamIndex int) {
	b := &builder{paramIndex: startParamIndex}
	expr := b.compile(f)
	if len(candidateIDs) > 0 {
		placeholder := b.param(candidateIDs)
		expr = fmt.Sprintf("(%s) AND p.id = ANY(%s)", expr, placeholder)
	}
	return expr, b.args, b.paramIndex
}

func (b *builder) compile(f Filter) string {
	switch {
	case f.isEmpty():
		return alwaysTrueSQL
	case f.leaf != nil:
		return b.compileTerm(*f.leaf)
	case f.not != nil:
		return fmt.Sprintf("NOT (%s)", b.compile(*f.not))
	case f.and != nil:
		return b.compileJoin(f.and, "AND", alwaysTrueSQL)
	case f.or != nil:
		return b.compileJoin(f.or, "OR", alwaysFalseSQL)
	default:
		return alwaysTrueSQL
	}
}

func (b *builder) compileJoin(children []Filter, op, identity string) string {
	if len(children) == 0 {
		return identity
	}
	expr := b.compile(children[0])
	for _, child := range children[1:] {
		expr = fmt.Sprintf("(%s) %s (%s)", expr, op, b.compile(child))
	}
	return expr
}

func (b *builder) compileTerm(t Term) string {
	switch t.Kind {
	case TermIncludeTags:
		placeholder := b.param(t.IDs)
		return fmt.Sprintf("EXISTS (SELECT 1 FROM pictures_tags pt WHERE pt.picture_id = p.id AND pt.tag_id = ANY(%s))", placeholder)
	case TermIncludeGroups:
		placeholder := b.param(t.IDs)
		return fmt.Sprintf("EXISTS (SELECT 1 FROM groups_pictures gp WHERE gp.picture_id = p.id AND gp.group_id = ANY(%s))", placeholder)
	case TermExifEquals:
		return b.compileExifEquals(t)
	case TermExifInInterval:
		return b.compileExifInterval(t)
	default:
		return alwaysTrueSQL
	}
}

func (b *builder) compileExifEquals(t Term) string {
	column := string(t.Field)

	if t.Field == ExifFieldExposureTime {
		return b.compileExposureTimeEquals(t.ExposureTimePairs)
	}

	placeholder := b.param(t.Values)
	cmp := fmt.Sprintf("p.%s = ANY(%s)", column, placeholder)
	if t.IsNullable() {
		return fmt.Sprintf("(p.%s IS NOT NULL AND %s)", column, cmp)
	}
	return cmp
}

// compileExposureTimeEquals guards the pair column individually since
// exposure time equality is on the exact (num, den) pair, not a single
// scalar — ANY() over a values list doesn't directly express pairwise
// tuple membership without a VALUES join, so each pair becomes its own
// OR-ed equality.
func (b *builder) compileExposureTimeEquals(pairs []ExposureTime) string {
	if len(pairs) == 0 {
		return alwaysFalseSQL
	}
	var clauses string
	for i, pair := range pairs {
		numPh := b.param(pair.Num)
		denPh := b.param(pair.Den)
		clause := fmt.Sprintf("(p.exposure_time_num = %s AND p.exposure_time_den = %s)", numPh, denPh)
		if i == 0 {
			clauses = clause
		} else {
			clauses = fmt.Sprintf("%s OR %s", clauses, clause)
		}
	}
	if clauses == "" {
		return alwaysFalseSQL
	}
	return fmt.Sprintf("(p.exposure_time_num IS NOT NULL AND p.exposure_time_den IS NOT NULL AND (%s))", clauses)
}

func (b *builder) compileExifInterval(t Term) string {
	column := string(t.Field)
	loPh := b.param(t.Interval[0])
	hiPh := b.param(t.Interval[1])
	cmp := fmt.Sprintf("p.%s BETWEEN %s AND %s", column, loPh, hiPh)
	if t.IsNullable() {
		return fmt.Sprintf("(p.%s IS NOT NULL AND %s)", column, cmp)
	}
	return cmp
}
