package store

import (
	"reflect"
	"time"
)

// Match reports whether a document field value satisfies op against operand.
// Values of a different type than the operand never match. Time operands
// accept every form ParseTime does.
func Match(field any, op Operator, operand any) bool {
	if op == OpArrayContains {
		list, ok := field.([]any)
		if !ok {
			return false
		}
		for _, it := range list {
			if reflect.DeepEqual(it, operand) {
				return true
			}
		}
		return false
	}

	cmp, ok := compare(field, operand)
	if !ok {
		return false
	}
	switch op {
	case OpEqual:
		return cmp == 0
	case OpNotEqual:
		return cmp != 0
	case OpLess:
		return cmp < 0
	case OpLessEqual:
		return cmp <= 0
	case OpGreater:
		return cmp > 0
	case OpGreaterEqual:
		return cmp >= 0
	}
	return false
}

// compare orders field against operand. ok is false when the two are not
// comparable, which excludes the document from the result.
func compare(field, operand any) (int, bool) {
	switch ov := operand.(type) {
	case time.Time:
		ft, ok := ParseTime(field)
		if !ok {
			return 0, false
		}
		return ft.Compare(ov), true
	case float64:
		fv, ok := field.(float64)
		if !ok {
			return 0, false
		}
		switch {
		case fv < ov:
			return -1, true
		case fv > ov:
			return 1, true
		}
		return 0, true
	case string:
		fv, ok := field.(string)
		if !ok {
			return 0, false
		}
		switch {
		case fv < ov:
			return -1, true
		case fv > ov:
			return 1, true
		}
		return 0, true
	case bool:
		fv, ok := field.(bool)
		if !ok {
			return 0, false
		}
		if fv == ov {
			return 0, true
		}
		return 1, true
	case nil:
		if field == nil {
			return 0, true
		}
		return 1, true
	}
	return 0, false
}
