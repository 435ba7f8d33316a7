package order

// Variation is a customer-selected value for one product attribute, with an
// optional free-text annotation (e.g. "Flavor" -> {"Vanilla", "extra light"}).
type Variation struct {
	Value      string
	Annotation string
}

// CustomImage is a customer-supplied reference image for a line item.
type CustomImage struct {
	URL     string
	Comment string
}

// LineItem is one product line of an order. It is hydrated data owned by the
// order store; the core treats it as an immutable value and never edits it,
// so fields are exported without behavior.
type LineItem struct {
	ID           string
	Name         string
	Quantity     int
	Variations   map[string]Variation
	KitchenNotes string
	DesignNotes  string
	CustomImages []CustomImage
	Category     string
}

// clone deep-copies the line item so copy-on-write order snapshots never
// alias each other's maps or slices.
func (li LineItem) clone() LineItem {
	c := li
	if li.Variations != nil {
		c.Variations = make(map[string]Variation, len(li.Variations))
		for name, v := range li.Variations {
			c.Variations[name] = v
		}
	}
	if li.CustomImages != nil {
		c.CustomImages = make([]CustomImage, len(li.CustomImages))
		copy(c.CustomImages, li.CustomImages)
	}
	return c
}

// cloneLineItems deep-copies a line item slice.
func cloneLineItems(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	cloned := make([]LineItem, len(items))
	for i, li := range items {
		cloned[i] = li.clone()
	}
	return cloned
}
