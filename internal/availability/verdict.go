package availability

// SlotVerdict результат проверки одного времени начала
type SlotVerdict int

const (
	SlotOK SlotVerdict = iota
	SlotBlocked
	SlotInPast
	SlotAfterReception
	SlotOverrunsClosing
	SlotBeforeOpening
	SlotArrivalsFull
	SlotOverlapFull
	SlotOutsideRestriction
	SlotOffGrid
)

func (v SlotVerdict) String() string {
	switch v {
	case SlotOK:
		return "ok"
	case SlotBlocked:
		return "blocked"
	case SlotInPast:
		return "in_past"
	case SlotAfterReception:
		return "after_reception"
	case SlotOverrunsClosing:
		return "overruns_closing"
	case SlotBeforeOpening:
		return "before_opening"
	case SlotArrivalsFull:
		return "arrivals_full"
	case SlotOverlapFull:
		return "overlap_full"
	case SlotOutsideRestriction:
		return "outside_restriction"
	case SlotOffGrid:
		return "off_grid"
	}
	return "unknown"
}
