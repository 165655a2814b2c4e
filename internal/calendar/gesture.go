package calendar

// Gesture is a resolved user action on the calendar.
type Gesture int

const (
	None Gesture = iota
	SwipeLeft
	SwipeRight
	SwipeUp
	SwipeDown
	TapHandle
)

// SwipeThreshold is the pan distance a drag must exceed to count as a swipe.
const SwipeThreshold = 50

func (g Gesture) String() string {
	switch g {
	case SwipeLeft:
		return "swipe-left"
	case SwipeRight:
		return "swipe-right"
	case SwipeUp:
		return "swipe-up"
	case SwipeDown:
		return "swipe-down"
	case TapHandle:
		return "tap"
	default:
		return "none"
	}
}

// Resolve maps a released pan offset to a gesture. Positive dy is downward.
// Horizontal movement wins over vertical.
func Resolve(dx, dy float64) Gesture {
	switch {
	case dx < -SwipeThreshold:
		return SwipeLeft
	case dx > SwipeThreshold:
		return SwipeRight
	case dy > SwipeThreshold:
		return SwipeDown
	case dy < -SwipeThreshold:
		return SwipeUp
	}
	return None
}
