package domain

// LineItem is one service selected on a worksheet
type LineItem struct {
	ServiceID    string  `yaml:"service_id" json:"serviceId" validate:"required"`
	Quantity     int     `yaml:"quantity" json:"quantity" validate:"gte=1"`
	BurdenTierID string  `yaml:"burden_tier" json:"burdenTierId" validate:"required"`
	DayType      DayType `yaml:"day_type,omitempty" json:"dayType,omitempty"`
	CareGradeID  string  `yaml:"care_grade,omitempty" json:"careGradeId,omitempty"`
}

// NewLineItem builds a line item, rejecting non-positive quantities
func NewLineItem(serviceID string, quantity int, burdenTierID string, dayType DayType, careGradeID string) (LineItem, error) {
	if quantity < 1 {
		return LineItem{}, &InvalidQuantityError{ServiceID: serviceID, Quantity: quantity}
	}
	if dayType == "" {
		dayType = DayWeekday
	}
	return LineItem{
		ServiceID:    serviceID,
		Quantity:     quantity,
		BurdenTierID: burdenTierID,
		DayType:      dayType,
		CareGradeID:  careGradeID,
	}, nil
}

// Worksheet is the set of selections a simulation runs over
type Worksheet struct {
	CustomerName   string     `yaml:"customer_name" json:"customerName"`
	CareGradeID    string     `yaml:"care_grade" json:"careGradeId" validate:"required"`
	DefaultDayType DayType    `yaml:"default_day_type,omitempty" json:"defaultDayType,omitempty"`
	DefaultBurden  string     `yaml:"default_burden_tier,omitempty" json:"defaultBurdenTierId,omitempty"`
	Lines          []LineItem `yaml:"lines" json:"lines" validate:"dive"`
}

// Normalize fills per-line defaults from the worksheet and canonicalizes
// day type aliases. It returns a copy; the receiver is untouched.
func (w Worksheet) Normalize() Worksheet {
	out := w
	out.DefaultDayType = NormalizeDayType(string(w.DefaultDayType))
	out.Lines = make([]LineItem, len(w.Lines))
	for i, l := range w.Lines {
		if l.DayType == "" {
			l.DayType = out.DefaultDayType
		} else {
			l.DayType = NormalizeDayType(string(l.DayType))
		}
		if l.BurdenTierID == "" {
			l.BurdenTierID = w.DefaultBurden
		}
		if l.CareGradeID == "" {
			l.CareGradeID = w.CareGradeID
		}
		out.Lines[i] = l
	}
	return out
}

// HasService reports whether any line selects the given service
func (w Worksheet) HasService(serviceID string) bool {
	for _, l := range w.Lines {
		if l.ServiceID == serviceID {
			return true
		}
	}
	return false
}

// AddLine appends a line
func (w *Worksheet) AddLine(item LineItem) {
	w.Lines = append(w.Lines, item)
}

// RemoveLine drops the line at index i. Out-of-range indexes are ignored.
func (w *Worksheet) RemoveLine(i int) {
	if i < 0 || i >= len(w.Lines) {
		return
	}
	w.Lines = append(w.Lines[:i], w.Lines[i+1:]...)
}

// SetQuantity changes a line's quantity. Values below 1 are rejected.
func (w *Worksheet) SetQuantity(i, quantity int) error {
	if i < 0 || i >= len(w.Lines) {
		return nil
	}
	if quantity < 1 {
		return &InvalidQuantityError{ServiceID: w.Lines[i].ServiceID, Quantity: quantity}
	}
	w.Lines[i].Quantity = quantity
	return nil
}

// SetBurdenTier changes a line's burden tier
func (w *Worksheet) SetBurdenTier(i int, tierID string) {
	if i < 0 || i >= len(w.Lines) {
		return
	}
	w.Lines[i].BurdenTierID = tierID
}

// Clone returns a copy whose lines can be modified independently
func (w Worksheet) Clone() Worksheet {
	out := w
	out.Lines = append([]LineItem(nil), w.Lines...)
	return out
}
