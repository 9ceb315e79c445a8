// Package core defines the domain types shared between the directory
// backends, the derivation pipeline, and the search/selection services.
package core

import "fmt"

// Weekday is a closed enum of the days an event can be scheduled on.
// Values match the directory's 0=Sunday convention.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday

	// NumWeekdays is the number of weekday values, for fixed-size filter arrays.
	NumWeekdays = 7
)

var weekdayNames = [NumWeekdays]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

func (d Weekday) String() string {
	if d < Sunday || d > Saturday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// Valid reports whether d is one of the seven defined weekdays.
func (d Weekday) Valid() bool {
	return d >= Sunday && d <= Saturday
}

// MarshalText implements encoding.TextMarshaler so seed files can use day names.
func (d Weekday) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid weekday %d", int(d))
	}
	return []byte(weekdayNames[d]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Weekday) UnmarshalText(text []byte) error {
	for i, name := range weekdayNames {
		if name == string(text) {
			*d = Weekday(i)
			return nil
		}
	}
	return fmt.Errorf("unknown weekday %q", string(text))
}

// EventType is a closed enum of workout types. An event carries one or more
// type tags used for filter matching and marker iconography. The workout
// type filter is single-select: activating one deactivates the others.
type EventType int

const (
	Bootcamp EventType = iota
	Run
	Ruck
	Swim

	// NumEventTypes is the number of workout type values.
	NumEventTypes = 4
)

var eventTypeNames = [NumEventTypes]string{"Bootcamp", "Run", "Ruck", "Swim"}

func (t EventType) String() string {
	if t < Bootcamp || t > Swim {
		return fmt.Sprintf("EventType(%d)", int(t))
	}
	return eventTypeNames[t]
}

// Valid reports whether t is a defined workout type.
func (t EventType) Valid() bool {
	return t >= Bootcamp && t <= Swim
}

// MarshalText implements encoding.TextMarshaler.
func (t EventType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid event type %d", int(t))
	}
	return []byte(eventTypeNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *EventType) UnmarshalText(text []byte) error {
	for i, name := range eventTypeNames {
		if name == string(text) {
			*t = EventType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown event type %q", string(text))
}

// Category is a closed enum of event categories (the F pillars). Like the
// workout type filter, the category filter is single-select.
type Category int

const (
	FirstF Category = iota
	SecondF
	ThirdF

	// NumCategories is the number of category values.
	NumCategories = 3
)

var categoryNames = [NumCategories]string{"1stF", "2ndF", "3rdF"}

func (c Category) String() string {
	if c < FirstF || c > ThirdF {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// Valid reports whether c is a defined category.
func (c Category) Valid() bool {
	return c >= FirstF && c <= ThirdF
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
	return []byte(categoryNames[c]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	for i, name := range categoryNames {
		if name == string(text) {
			*c = Category(i)
			return nil
		}
	}
	return fmt.Errorf("unknown category %q", string(text))
}

// Interaction tags the last map viewport event.
type Interaction int

const (
	Idle Interaction = iota
	Drag
	Zoom
)

func (i Interaction) String() string {
	switch i {
	case Idle:
		return "idle"
	case Drag:
		return "drag"
	case Zoom:
		return "zoom"
	default:
		return fmt.Sprintf("Interaction(%d)", int(i))
	}
}
